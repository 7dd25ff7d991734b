package ipl

import (
	"image"
	"image/color"
	"image/draw"
)

// ToImage converts the buffer to a standard library image. FormatGray8
// becomes *image.Gray; the other formats become *image.NRGBA, with
// opaque alpha filled in for FormatRGB8.
func (b *Buffer) ToImage() image.Image {
	switch b.format {
	case FormatGray8:
		img := image.NewGray(image.Rect(0, 0, b.width, b.height))
		copy(img.Pix, b.data)
		return img
	case FormatRGB8:
		img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
		for i, j := 0, 0; i < len(b.data); i, j = i+3, j+4 {
			img.Pix[j+0] = b.data[i+0]
			img.Pix[j+1] = b.data[i+1]
			img.Pix[j+2] = b.data[i+2]
			img.Pix[j+3] = 0xff
		}
		return img
	default:
		img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
		copy(img.Pix, b.data)
		return img
	}
}

// FromImage creates a Buffer holding a copy of the image's pixels. The
// format follows the source: grayscale images become FormatGray8, YCbCr
// (JPEG) images FormatRGB8, and everything else FormatRGBA8 with
// non-premultiplied alpha. Returns ErrInvalidArgument for images with
// empty bounds.
func FromImage(img image.Image) (*Buffer, error) {
	switch src := img.(type) {
	case *image.Gray:
		return fromGray(src)
	case *image.NRGBA:
		return fromNRGBA(src)
	case *image.YCbCr:
		return fromYCbCr(src)
	}
	// Anything else, premultiplied RGBA included, round-trips through
	// a straight-alpha draw.
	bounds := img.Bounds()
	tmp := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(tmp, tmp.Bounds(), img, bounds.Min, draw.Src)
	return fromNRGBA(tmp)
}

func fromGray(src *image.Gray) (*Buffer, error) {
	bounds := src.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy(), FormatGray8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < buf.height; y++ {
		off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(buf.Row(y), src.Pix[off:off+buf.width])
	}
	return buf, nil
}

func fromNRGBA(src *image.NRGBA) (*Buffer, error) {
	bounds := src.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy(), FormatRGBA8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < buf.height; y++ {
		off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(buf.Row(y), src.Pix[off:off+buf.width*4])
	}
	return buf, nil
}

func fromYCbCr(src *image.YCbCr) (*Buffer, error) {
	bounds := src.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy(), FormatRGB8)
	if err != nil {
		return nil, err
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			yi := src.YOffset(x, y)
			ci := src.COffset(x, y)
			r, g, b := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
			buf.data[i+0] = r
			buf.data[i+1] = g
			buf.data[i+2] = b
			i += 3
		}
	}
	return buf, nil
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return color.NRGBA{}
	}
	switch b.format {
	case FormatGray8:
		return color.Gray{Y: b.data[off]}
	case FormatRGB8:
		return color.NRGBA{R: b.data[off], G: b.data[off+1], B: b.data[off+2], A: 0xff}
	default:
		return color.NRGBA{R: b.data[off], G: b.data[off+1], B: b.data[off+2], A: b.data[off+3]}
	}
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	if b.format == FormatGray8 {
		return color.GrayModel
	}
	return color.NRGBAModel
}
