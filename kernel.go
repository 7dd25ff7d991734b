package ipl

import "math"

// maxKernelRadius caps the Gaussian kernel radius. A sigma large enough to
// trip it asks for a kernel wider than any image this engine will see.
const maxKernelRadius = 1 << 24

// kernel is a normalized symmetric 1-D convolution kernel: weights holds
// radius*2+1 values that sum to 1, with the peak at index radius.
type kernel struct {
	radius  int
	weights []float32
}

// buildGaussianKernel constructs a 1-D Gaussian kernel for the given
// standard deviation. The radius is ceil(3*sigma), covering 99.7% of the
// distribution (3 standard deviations).
//
// Weight at offset i is exp(-i²/(2σ²)), normalized so the kernel sums
// to 1.0. Symmetry is exact: offsets i and -i produce identical weights.
func buildGaussianKernel(sigma float64) (kernel, error) {
	if sigma <= 0 {
		return kernel{}, ErrInvalidArgument
	}

	radius := int(math.Ceil(3 * sigma))
	if radius > maxKernelRadius {
		return kernel{}, ErrTooLarge
	}
	size := radius*2 + 1
	weights := make([]float32, size)

	// The 1/(σ√(2π)) normalization constant is skipped: the explicit
	// normalization below makes it redundant.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / twoSigmaSq)
		weights[i+radius] = float32(v)
		sum += v
	}

	invSum := float32(1.0 / sum)
	for i := range weights {
		weights[i] *= invSum
	}

	return kernel{radius: radius, weights: weights}, nil
}
