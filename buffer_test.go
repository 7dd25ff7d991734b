package ipl

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	buf, err := NewBuffer(640, 480, FormatRGB8)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	if buf.Width() != 640 {
		t.Errorf("Width() = %d, want 640", buf.Width())
	}
	if buf.Height() != 480 {
		t.Errorf("Height() = %d, want 480", buf.Height())
	}
	if buf.Format() != FormatRGB8 {
		t.Errorf("Format() = %v, want FormatRGB8", buf.Format())
	}
	if buf.ByteSize() != 640*480*3 {
		t.Errorf("ByteSize() = %d, want %d", buf.ByteSize(), 640*480*3)
	}
	for i, v := range buf.Data() {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0 (new buffers are zero filled)", i, v)
		}
	}
}

func TestNewBufferInvalid(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		format  Format
		wantErr error
	}{
		{"zero width", 0, 10, FormatGray8, ErrInvalidArgument},
		{"zero height", 10, 0, FormatGray8, ErrInvalidArgument},
		{"negative width", -1, 10, FormatGray8, ErrInvalidArgument},
		{"negative height", 10, -1, FormatGray8, ErrInvalidArgument},
		{"bad format", 10, 10, Format(77), ErrUnsupportedFormat},
		{"too large", 1 << 20, 1 << 20, FormatRGBA8, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBuffer(tt.width, tt.height, tt.format); !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBuffer err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromRaw(t *testing.T) {
	data := make([]uint8, 4*3*3)
	data[0] = 99
	buf, err := FromRaw(data, 4, 3, FormatRGB8)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}

	// No copy: the buffer aliases the caller's slice.
	data[1] = 42
	if buf.Data()[0] != 99 || buf.Data()[1] != 42 {
		t.Error("FromRaw copied the data instead of adopting it")
	}
}

func TestFromRawTruncatesExtra(t *testing.T) {
	data := make([]uint8, 100)
	buf, err := FromRaw(data, 5, 4, FormatGray8)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}
	if buf.ByteSize() != 20 {
		t.Errorf("ByteSize() = %d, want 20", buf.ByteSize())
	}
}

func TestFromRawInvalid(t *testing.T) {
	if _, err := FromRaw(make([]uint8, 10), 5, 4, FormatGray8); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short data err = %v, want ErrInvalidArgument", err)
	}
	if _, err := FromRaw(make([]uint8, 10), 0, 4, FormatGray8); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero width err = %v, want ErrInvalidArgument", err)
	}
	if _, err := FromRaw(make([]uint8, 10), 2, 2, Format(9)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("bad format err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestBufferClone(t *testing.T) {
	buf := newTestBuffer(t, 7, 5, FormatRGBA8)
	fillRandom(buf, 70)

	clone := buf.Clone()
	if !bytes.Equal(buf.Data(), clone.Data()) {
		t.Fatal("clone data differs from original")
	}

	clone.Data()[0]++
	if buf.Data()[0] == clone.Data()[0] {
		t.Error("clone shares storage with the original")
	}
}

func TestBufferPixelOffset(t *testing.T) {
	buf := newTestBuffer(t, 10, 6, FormatRGB8)

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 0},
		{1, 0, 3},
		{0, 1, 30},
		{9, 5, (5*10 + 9) * 3},
		{-1, 0, -1},
		{10, 0, -1},
		{0, 6, -1},
	}

	for _, tt := range tests {
		if got := buf.PixelOffset(tt.x, tt.y); got != tt.want {
			t.Errorf("PixelOffset(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBufferRow(t *testing.T) {
	buf := newTestBuffer(t, 4, 3, FormatGray8)
	fillRandom(buf, 71)

	row := buf.Row(1)
	if len(row) != 4 {
		t.Fatalf("Row(1) len = %d, want 4", len(row))
	}
	if &row[0] != &buf.Data()[4] {
		t.Error("Row(1) does not alias the buffer")
	}
}

func TestBufferIsEmpty(t *testing.T) {
	var nilBuf *Buffer
	if !nilBuf.IsEmpty() {
		t.Error("nil buffer should be empty")
	}
	if !(&Buffer{}).IsEmpty() {
		t.Error("zero buffer should be empty")
	}

	buf := newTestBuffer(t, 1, 1, FormatGray8)
	if buf.IsEmpty() {
		t.Error("allocated buffer should not be empty")
	}
}

func TestImageBytesGuards(t *testing.T) {
	if _, err := imageBytes(4096, 4096, 4); err != nil {
		t.Errorf("imageBytes(4096, 4096, 4) err = %v, want nil", err)
	}
	if _, err := imageBytes(1<<29, 1<<29, 1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("overflowing product err = %v, want ErrTooLarge", err)
	}
	if _, err := imageBytes(1<<30, 2, 1); err == nil {
		t.Error("pixel count above the guard should fail")
	}
	// Right at the limit: 1<<30 bytes is still allowed.
	if got, err := imageBytes(1<<15, 1<<15, 1); err != nil || got != 1<<30 {
		t.Errorf("imageBytes(1<<15, 1<<15, 1) = %d, %v, want %d, nil", got, err, 1<<30)
	}
}
