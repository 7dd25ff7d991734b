package ipl

// maxBufferBytes caps any single pixel allocation, including the padded
// canvases and scratch planes the filters build internally.
const maxBufferBytes = 1 << 30

// imageBytes returns width*height*channels, or ErrTooLarge when the
// product exceeds maxBufferBytes.
func imageBytes(width, height, channels int) (int, error) {
	if width > maxBufferBytes || height > maxBufferBytes {
		return 0, ErrTooLarge
	}
	pixels := int64(width) * int64(height)
	if pixels > maxBufferBytes {
		return 0, ErrTooLarge
	}
	total := pixels * int64(channels)
	if total > maxBufferBytes {
		return 0, ErrTooLarge
	}
	return int(total), nil
}

// Buffer is an in-memory raster image: a tightly packed byte slice of
// interleaved 8-bit channels, rows stored top to bottom with no padding.
//
// The data slice always holds exactly width*height*channels bytes. Filters
// that change the channel count (Grayscale, SobelEdges) replace the slice
// and the format together, so a Buffer never observes a half-converted
// state.
//
// Thread safety: a Buffer is safe for concurrent reads. Filters mutate the
// buffer in place and require external synchronization.
type Buffer struct {
	width  int
	height int
	format Format
	data   []uint8
}

// NewBuffer creates a zero-filled buffer with the given dimensions and
// format. Returns ErrInvalidArgument for non-positive dimensions,
// ErrUnsupportedFormat for an unknown format, and ErrTooLarge when the
// pixel data would exceed the engine's allocation limit.
func NewBuffer(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidArgument
	}
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	size, err := imageBytes(width, height, format.Channels())
	if err != nil {
		return nil, err
	}
	return &Buffer{
		width:  width,
		height: height,
		format: format,
		data:   make([]uint8, size),
	}, nil
}

// FromRaw creates a Buffer from existing pixel data without copying.
// The slice must hold at least width*height bytes times the format's
// channel count; extra bytes beyond that are sliced off. The caller must
// not touch the retained portion afterwards.
func FromRaw(data []uint8, width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidArgument
	}
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	size, err := imageBytes(width, height, format.Channels())
	if err != nil {
		return nil, err
	}
	if len(data) < size {
		return nil, ErrInvalidArgument
	}
	return &Buffer{
		width:  width,
		height: height,
		format: format,
		data:   data[:size],
	}, nil
}

// Width returns the image width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *Buffer) Format() Format {
	return b.format
}

// Channels returns the number of interleaved channels per pixel.
func (b *Buffer) Channels() int {
	return b.format.Channels()
}

// Data returns the backing pixel slice. Mutating it mutates the buffer.
func (b *Buffer) Data() []uint8 {
	return b.data
}

// ByteSize returns the size of the pixel data in bytes.
func (b *Buffer) ByteSize() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer holds no pixel data.
func (b *Buffer) IsEmpty() bool {
	return b == nil || len(b.data) == 0
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]uint8, len(b.data))
	copy(data, b.data)
	return &Buffer{
		width:  b.width,
		height: b.height,
		format: b.format,
		data:   data,
	}
}

// PixelOffset returns the index of pixel (x, y) in Data, or -1 when the
// coordinates lie outside the image.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.format.Channels()
}

// Row returns the pixel data of row y without copying.
func (b *Buffer) Row(y int) []uint8 {
	stride := b.format.RowBytes(b.width)
	return b.data[y*stride : (y+1)*stride]
}

// install replaces the backing storage and format in one step. Filters
// that reduce the channel count use it after fully computing the new
// plane, so errors earlier in the pipeline leave the buffer untouched.
func (b *Buffer) install(data []uint8, format Format) {
	b.data = data
	b.format = format
}
