package ipl

// blurSigmaEpsilon is the sigma below which blur has no visible effect
// and GaussianBlur returns without touching the buffer.
const blurSigmaEpsilon = 1e-6

// GaussianBlur blurs the buffer in place with a Gaussian of the given
// standard deviation. The 2-D convolution is separable, so it runs as two
// 1-D passes - horizontal, then vertical - at O(w*h*radius) instead of
// O(w*h*radius²). Sampling past the image border is edge-clamped.
//
// A sigma of zero (or below the visual threshold) succeeds without
// modifying the buffer. Negative sigma and nil or empty buffers return
// ErrInvalidArgument; a sigma whose kernel would exceed the allocation
// guard returns ErrTooLarge. On error the buffer is unmodified.
//
// The vertical pass reads the horizontal pass's result from a scratch
// plane, never from the buffer being written: mixing filtered and
// unfiltered samples within one pass would break the separable identity
// G(x,y) = G(x)·G(y).
func GaussianBlur(buf *Buffer, sigma float64, opts ...Option) error {
	if buf.IsEmpty() {
		return ErrInvalidArgument
	}
	if sigma < 0 {
		return ErrInvalidArgument
	}
	if sigma <= blurSigmaEpsilon {
		return nil
	}

	k, err := buildGaussianKernel(sigma)
	if err != nil {
		return err
	}

	o := applyOptions(opts)
	width, height := buf.width, buf.height
	channels := buf.Channels()
	workers := o.workers
	if workers > channels {
		workers = channels
	}

	Logger().Debug("gaussian blur",
		"width", width, "height", height, "channels", channels,
		"sigma", sigma, "radius", k.radius, "workers", workers)

	scratch := getScratch(len(buf.data))
	defer putScratch(scratch)

	// Horizontal pass: buffer -> scratch.
	runPerChannel(workers, channels, func(c int) {
		convolveRows(scratch, buf.data, width, height, channels, c, k)
	})
	// Vertical pass: scratch -> buffer.
	runPerChannel(workers, channels, func(c int) {
		convolveColumns(buf.data, scratch, width, height, channels, c, k)
	})

	return nil
}

// convolveRows convolves one channel along x, reading src and writing dst.
// Sample columns outside [0,width) are clamped to the nearest valid column.
func convolveRows(dst, src []uint8, width, height, channels, ch int, k kernel) {
	for y := 0; y < height; y++ {
		rowBase := y * width * channels
		for x := 0; x < width; x++ {
			var sum float32
			for i := -k.radius; i <= k.radius; i++ {
				sx := x + i
				if sx < 0 {
					sx = 0
				} else if sx >= width {
					sx = width - 1
				}
				sum += float32(src[rowBase+sx*channels+ch]) * k.weights[i+k.radius]
			}
			dst[rowBase+x*channels+ch] = clampUint8(sum)
		}
	}
}

// convolveColumns convolves one channel along y, reading src and writing
// dst. Sample rows outside [0,height) are clamped to the nearest valid row.
func convolveColumns(dst, src []uint8, width, height, channels, ch int, k kernel) {
	stride := width * channels
	for y := 0; y < height; y++ {
		rowBase := y * stride
		for x := 0; x < width; x++ {
			var sum float32
			for i := -k.radius; i <= k.radius; i++ {
				sy := y + i
				if sy < 0 {
					sy = 0
				} else if sy >= height {
					sy = height - 1
				}
				sum += float32(src[sy*stride+x*channels+ch]) * k.weights[i+k.radius]
			}
			dst[rowBase+x*channels+ch] = clampUint8(sum)
		}
	}
}

// clampInt clamps an integer to the inclusive range [minVal, maxVal].
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
