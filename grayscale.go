package ipl

// Rec. 601 luma weights. Green dominates because the eye is most
// sensitive there; blue contributes least.
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// Grayscale converts the buffer to single-channel luma in place. The
// buffer's format becomes FormatGray8 and its byte size shrinks to one
// byte per pixel. Alpha, if present, is discarded.
//
// A buffer that is already FormatGray8 is returned unchanged. Nil or
// empty buffers return ErrInvalidArgument.
func Grayscale(buf *Buffer) error {
	if buf.IsEmpty() {
		return ErrInvalidArgument
	}
	if buf.format == FormatGray8 {
		return nil
	}

	width, height := buf.width, buf.height
	channels := buf.Channels()

	Logger().Debug("grayscale",
		"width", width, "height", height, "channels", channels)

	gray := make([]uint8, width*height)
	reduceToLuma(gray, buf.data, width, height, channels)
	buf.install(gray, FormatGray8)
	return nil
}

// reduceToLuma writes the Rec. 601 luma of each src pixel into dst, one
// byte per pixel. src holds width*height pixels of the given channel
// count; dst must hold at least width*height bytes. A single-channel src
// is copied through unweighted.
func reduceToLuma(dst, src []uint8, width, height, channels int) {
	n := width * height
	if channels == 1 {
		copy(dst[:n], src[:n])
		return
	}
	for i := 0; i < n; i++ {
		p := i * channels
		luma := lumaRed*float32(src[p]) +
			lumaGreen*float32(src[p+1]) +
			lumaBlue*float32(src[p+2])
		dst[i] = clampUint8(luma)
	}
}
