package ipl

import (
	"math/rand"
	"testing"
)

// newTestBuffer creates a buffer or fails the test.
func newTestBuffer(t *testing.T, width, height int, format Format) *Buffer {
	t.Helper()
	buf, err := NewBuffer(width, height, format)
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d, %v) failed: %v", width, height, format, err)
	}
	return buf
}

// fillUniform sets every pixel to the given per-channel values.
func fillUniform(buf *Buffer, values ...uint8) {
	channels := buf.Channels()
	for i := range buf.Data() {
		buf.Data()[i] = values[i%channels]
	}
}

// fillRandom fills the buffer with deterministic pseudo-random bytes.
func fillRandom(buf *Buffer, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	data := buf.Data()
	for i := range data {
		data[i] = uint8(rng.Intn(256))
	}
}

// pixel returns the channel values of pixel (x, y).
func pixel(t *testing.T, buf *Buffer, x, y int) []uint8 {
	t.Helper()
	off := buf.PixelOffset(x, y)
	if off < 0 {
		t.Fatalf("pixel (%d, %d) out of bounds", x, y)
	}
	return buf.Data()[off : off+buf.Channels()]
}

// setPixel writes the channel values of pixel (x, y).
func setPixel(t *testing.T, buf *Buffer, x, y int, values ...uint8) {
	t.Helper()
	off := buf.PixelOffset(x, y)
	if off < 0 {
		t.Fatalf("pixel (%d, %d) out of bounds", x, y)
	}
	copy(buf.Data()[off:off+buf.Channels()], values)
}
