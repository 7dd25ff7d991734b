package ipl

// MedianFilter replaces each pixel with the per-channel median of the
// square window extending radius pixels in every direction. The filter
// runs in place. Pixels past the border are edge-clamped, which the
// implementation realizes by working on a padded copy of the image.
//
// The window median comes from a 256-bin histogram that slides along
// each row: one column of samples leaves, one enters, so a row costs
// O(w*window) instead of O(w*window²) regardless of radius.
//
// A radius of zero succeeds without touching the buffer. Negative radius
// and nil or empty buffers return ErrInvalidArgument; a radius whose
// padded canvas would exceed the allocation guard returns ErrTooLarge.
// On error the buffer is unmodified.
func MedianFilter(buf *Buffer, radius int, opts ...Option) error {
	if buf.IsEmpty() {
		return ErrInvalidArgument
	}
	if radius < 0 {
		return ErrInvalidArgument
	}
	if radius == 0 {
		return nil
	}
	if radius > maxKernelRadius {
		return ErrTooLarge
	}

	width, height := buf.width, buf.height
	channels := buf.Channels()
	paddedBytes, err := imageBytes(width+2*radius, height+2*radius, channels)
	if err != nil {
		return err
	}

	o := applyOptions(opts)
	workers := o.workers
	if workers > channels {
		workers = channels
	}

	Logger().Debug("median filter",
		"width", width, "height", height, "channels", channels,
		"radius", radius, "workers", workers)

	padded := getScratch(paddedBytes)
	defer putScratch(padded)
	padCanvas(padded, buf.data, width, height, channels, radius)

	runPerChannel(workers, channels, func(c int) {
		medianChannel(buf.data, padded, width, height, channels, c, radius)
	})

	return nil
}

// padCanvas fills dst with src extended by radius pixels of edge
// replication on every side. dst must hold
// (width+2*radius)*(height+2*radius)*channels bytes.
func padCanvas(dst, src []uint8, width, height, channels, radius int) {
	paddedStride := (width + 2*radius) * channels
	srcStride := width * channels
	for y := 0; y < height+2*radius; y++ {
		sy := clampInt(y-radius, 0, height-1)
		srcRow := src[sy*srcStride : (sy+1)*srcStride]
		dstRow := dst[y*paddedStride : (y+1)*paddedStride]
		copy(dstRow[radius*channels:], srcRow)
		first := srcRow[:channels]
		last := srcRow[(width-1)*channels:]
		for x := 0; x < radius; x++ {
			copy(dstRow[x*channels:(x+1)*channels], first)
			copy(dstRow[(radius+width+x)*channels:(radius+width+x+1)*channels], last)
		}
	}
}

// medianChannel computes one channel of the filtered image. For each
// output row it seeds the histogram from the leftmost window, then
// slides right: the leaving column's samples are removed and the
// entering column's added, one histogram update per window row.
//
// Padded coordinates relate to output ones by a +radius shift, so the
// window for output pixel (x, y) covers padded columns x..x+2*radius
// of padded rows y..y+2*radius.
func medianChannel(dst, padded []uint8, width, height, channels, ch, radius int) {
	window := 2*radius + 1
	area := window * window
	paddedStride := (width + 2*radius) * channels
	dstStride := width * channels

	var hist [256]int
	for y := 0; y < height; y++ {
		hist = [256]int{}
		for wy := 0; wy < window; wy++ {
			base := (y+wy)*paddedStride + ch
			for wx := 0; wx < window; wx++ {
				hist[padded[base+wx*channels]]++
			}
		}
		rowBase := y*dstStride + ch
		for x := 0; x < width; x++ {
			dst[rowBase+x*channels] = medianOf(&hist, area)
			if x == width-1 {
				break
			}
			for wy := 0; wy < window; wy++ {
				base := (y+wy)*paddedStride + ch
				hist[padded[base+x*channels]]--
				hist[padded[base+(x+window)*channels]]++
			}
		}
	}
}

// medianOf returns the smallest value whose cumulative count passes half
// the window area. The counts always sum to area, so the scan cannot run
// past the last bin; 255 is returned as a safety net.
func medianOf(hist *[256]int, area int) uint8 {
	half := area / 2
	cum := 0
	for v := 0; v < 256; v++ {
		cum += hist[v]
		if cum > half {
			return uint8(v)
		}
	}
	return 255
}
