package ipl

import (
	"math/bits"
	"sync"
)

// maxPooledScratch bounds what the pools retain; anything larger is
// allocated directly and goes to the garbage collector after use.
const maxPooledScratch = 64 << 20

// scratchBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type scratchBuffer struct {
	data []uint8
}

// scratchPools recycles the working planes the filters allocate per call:
// the blur pass buffer, the Sobel luma plane, the median padded canvas.
// Pools are indexed by power-of-two size class so repeated calls on
// same-sized images reuse the same slices.
var scratchPools [27]sync.Pool

// scratchClass returns the smallest power-of-two exponent c with
// 1<<c >= size.
func scratchClass(size int) int {
	return bits.Len(uint(size - 1))
}

// getScratch returns a byte slice of exactly size bytes. Contents are
// unspecified: callers must write every byte they later read. Slices from
// getScratch must never be installed into a Buffer; they go back to the
// pools via putScratch.
func getScratch(size int) []uint8 {
	class := scratchClass(size)
	if class >= len(scratchPools) {
		// Too large to pool.
		return make([]uint8, size)
	}
	if v := scratchPools[class].Get(); v != nil {
		return v.(*scratchBuffer).data[:size]
	}
	return make([]uint8, size, 1<<class)
}

// putScratch returns a slice obtained from getScratch to its pool.
func putScratch(buf []uint8) {
	c := cap(buf)
	if c == 0 || c > maxPooledScratch || c&(c-1) != 0 {
		return
	}
	class := bits.Len(uint(c)) - 1
	scratchPools[class].Put(&scratchBuffer{data: buf[:c]})
}
