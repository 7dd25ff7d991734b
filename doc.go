// Package ipl provides spatial filtering for raster images.
//
// # Overview
//
// ipl is a small Pure Go image-filtering engine. It operates on Buffer, a
// tightly packed byte raster with 1, 3 or 4 interleaved 8-bit channels, and
// offers four pixel-level filters: separable Gaussian blur, Sobel
// gradient-magnitude edge detection, a sliding-histogram median filter, and
// luma grayscale reduction.
//
// # Quick Start
//
//	import (
//	    "github.com/goraster/ipl"
//	    "github.com/goraster/ipl/imageio"
//	)
//
//	buf, err := imageio.Load("photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ipl.GaussianBlur(buf, 2.5); err != nil {
//	    log.Fatal(err)
//	}
//	if err := imageio.Save("blurred.jpg", buf); err != nil {
//	    log.Fatal(err)
//	}
//
// # Buffers
//
// A Buffer stores pixels row-major with channels interleaved: pixel (x, y)
// channel c lives at data[(y*width+x)*channels + c]. The channel count is
// carried by a typed Format (FormatGray8, FormatRGB8, FormatRGBA8), so
// filters that collapse the image to one channel (Grayscale, SobelEdges)
// change the format and the data together.
//
// # Filters
//
// Every filter validates its arguments, then either completes or returns an
// error with the buffer untouched; a Buffer is never left half-filtered.
// Errors are the package sentinels (ErrInvalidArgument, ErrTooLarge,
// ErrUnsupportedFormat, ErrInternal) and are matched with errors.Is.
//
// # Concurrency
//
// A Buffer must be owned by one filter call at a time. The multi-channel
// filters accept WithWorkers(n) to process channels on parallel goroutines;
// output is byte-identical to the sequential path. No other concurrency is
// used unless requested.
//
// # Boundary Policy
//
// All filters sample outside the image by edge clamping: out-of-range
// coordinates are replaced by the nearest valid row or column. The output
// therefore covers every pixel, borders included.
package ipl

// Version information
const (
	// Version is the current version of the library
	Version = "1.0.0"

	// VersionMajor is the major version
	VersionMajor = 1

	// VersionMinor is the minor version
	VersionMinor = 0

	// VersionPatch is the patch version
	VersionPatch = 0
)
