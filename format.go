package ipl

// Format identifies the pixel layout of a Buffer.
//
// The engine processes 8-bit channels exclusively. Multi-channel formats
// store the channels of each pixel interleaved, row by row.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit RGBA with straight alpha (4 bytes per pixel).
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of interleaved channels per pixel. Every
	// channel is one byte, so this is also the pixel stride in bytes.
	Channels int

	// HasAlpha indicates if the format carries an alpha channel.
	HasAlpha bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {Channels: 1, HasAlpha: false},
	FormatRGB8:  {Channels: 3, HasAlpha: false},
	FormatRGBA8: {Channels: 4, HasAlpha: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of interleaved channels per pixel.
func (f Format) Channels() int {
	return f.Info().Channels
}

// BytesPerPixel returns the pixel stride in bytes. All formats store one
// byte per channel.
func (f Format) BytesPerPixel() int {
	return f.Info().Channels
}

// HasAlpha returns true if this format carries an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// FormatForChannels maps an interleaved channel count to its Format.
// Only 1, 3 and 4 channel layouts are supported.
func FormatForChannels(channels int) (Format, bool) {
	switch channels {
	case 1:
		return FormatGray8, true
	case 3:
		return FormatRGB8, true
	case 4:
		return FormatRGBA8, true
	default:
		return formatCount, false
	}
}
