package ipl

import (
	"math"

	"github.com/goraster/ipl/internal/parallel"
)

// SobelEdges replaces the buffer with its Sobel gradient magnitude map.
// Color input is first reduced to luma; the result is always
// FormatGray8, with strong edges bright and flat regions dark.
//
// The 3x3 Sobel kernels separate into a [-1 0 1] derivative and a
// [1 2 1] smooth, so each luma row is folded once into a horizontal
// derivative row and a horizontal smooth row. Three of each are kept in
// rotation: the gradient at row m needs only rows m-1, m and m+1, never
// the whole plane. Rows and columns past the border are edge-clamped,
// so border pixels get gradient values too (a one-row image has zero
// vertical derivative everywhere, a one-column image zero horizontal).
//
// Nil or empty buffers return ErrInvalidArgument, leaving the buffer
// unmodified.
func SobelEdges(buf *Buffer, opts ...Option) error {
	if buf.IsEmpty() {
		return ErrInvalidArgument
	}

	o := applyOptions(opts)
	width, height := buf.width, buf.height
	channels := buf.Channels()

	Logger().Debug("sobel edges",
		"width", width, "height", height, "channels", channels,
		"workers", o.workers)

	// The luma plane for gray input is the buffer itself. The gradient
	// rows for row m are written only after rows m-1..m+1 have been
	// folded away, so reading and the final install never overlap.
	luma := buf.data
	if channels > 1 {
		luma = getScratch(width * height)
		defer putScratch(luma)
		reduceBands(luma, buf.data, width, height, channels, o.workers)
	}

	edges := make([]uint8, width*height)

	var dx, sx [3][]int32
	rows := make([]int32, 6*width)
	for i := range dx {
		dx[i] = rows[(2*i)*width : (2*i+1)*width]
		sx[i] = rows[(2*i+1)*width : (2*i+2)*width]
	}

	// fold turns luma row r into its derivative and smooth rows.
	fold := func(r int) {
		row := luma[r*width : (r+1)*width]
		d, s := dx[r%3], sx[r%3]
		for x := 0; x < width; x++ {
			left := int32(row[clampInt(x-1, 0, width-1)])
			right := int32(row[clampInt(x+1, 0, width-1)])
			d[x] = right - left
			s[x] = left + 2*int32(row[x]) + right
		}
	}

	// emit writes gradient row m from the folded rows top, m and bot.
	emit := func(m, top, bot int) {
		dxT, dxM, dxB := dx[top%3], dx[m%3], dx[bot%3]
		sxT, sxB := sx[top%3], sx[bot%3]
		out := edges[m*width : (m+1)*width]
		for x := 0; x < width; x++ {
			gx := dxT[x] + 2*dxM[x] + dxB[x]
			gy := sxB[x] - sxT[x]
			out[x] = clampUint8(float32(math.Sqrt(float64(gx*gx + gy*gy))))
		}
	}

	fold(0)
	if height == 1 {
		emit(0, 0, 0)
	} else {
		fold(1)
		emit(0, 0, 1)
		for m := 1; m < height-1; m++ {
			fold(m + 1)
			emit(m, m-1, m+1)
		}
		emit(height-1, height-2, height-1)
	}

	buf.install(edges, FormatGray8)
	return nil
}

// reduceBands reduces src to luma in dst, splitting the rows across up
// to workers goroutines. Bands touch disjoint row ranges, so the result
// matches a single sequential pass byte for byte.
func reduceBands(dst, src []uint8, width, height, channels, workers int) {
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		reduceToLuma(dst, src, width, height, channels)
		return
	}
	tasks := make([]func(), workers)
	for b := 0; b < workers; b++ {
		y0 := b * height / workers
		y1 := (b + 1) * height / workers
		tasks[b] = func() {
			reduceToLuma(dst[y0*width:y1*width],
				src[y0*width*channels:y1*width*channels],
				width, y1-y0, channels)
		}
	}
	parallel.Do(workers, tasks...)
}
