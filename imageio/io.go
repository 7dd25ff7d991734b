// Package imageio reads and writes ipl buffers as image files.
//
// Decoding sniffs the format from the stream contents; encoding selects
// it from the file extension (Save) or an explicit format name (Encode).
// PNG, JPEG, BMP and TIFF are supported. Decoded buffers keep the source
// channel structure: grayscale files load as one channel, color JPEG as
// three, everything else as four.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/goraster/ipl"
)

// jpegQuality is the encode quality for JPEG output.
const jpegQuality = 95

// Load reads the image file at path into a Buffer, auto-detecting the
// format from the file contents.
func Load(path string) (*ipl.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode reads an image from r into a Buffer, auto-detecting the format.
func Decode(r io.Reader) (*ipl.Buffer, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	buf, err := ipl.FromImage(img)
	if err != nil {
		return nil, err
	}
	ipl.Logger().Debug("decoded image",
		"codec", name, "width", buf.Width(), "height", buf.Height(),
		"format", buf.Format())
	return buf, nil
}

// DecodeBytes decodes an image from a byte slice, auto-detecting the
// format.
func DecodeBytes(data []byte) (*ipl.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("imageio: decode: %w", ipl.ErrInvalidArgument)
	}
	return Decode(bytes.NewReader(data))
}

// Save writes the buffer to path, choosing the codec from the file
// extension: .png, .jpg/.jpeg, .bmp, .tif/.tiff. Unknown extensions
// return ErrUnsupportedFormat.
func Save(path string, buf *ipl.Buffer) error {
	format, ok := formatForExt(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("imageio: save %q: %w", path, ipl.ErrUnsupportedFormat)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, buf, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes the buffer to w in the named format: "png", "jpeg",
// "bmp" or "tiff". Unknown names return ErrUnsupportedFormat.
func Encode(w io.Writer, buf *ipl.Buffer, format string) error {
	if buf.IsEmpty() {
		return fmt.Errorf("imageio: encode: %w", ipl.ErrInvalidArgument)
	}

	img := buf.ToImage()
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, nil)
	default:
		return fmt.Errorf("imageio: encode %q: %w", format, ipl.ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	ipl.Logger().Debug("encoded image",
		"codec", format, "width", buf.Width(), "height", buf.Height(),
		"format", buf.Format())
	return nil
}

// formatForExt maps a file extension to an Encode format name.
func formatForExt(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".png":
		return "png", true
	case ".jpg", ".jpeg":
		return "jpeg", true
	case ".bmp":
		return "bmp", true
	case ".tif", ".tiff":
		return "tiff", true
	default:
		return "", false
	}
}
