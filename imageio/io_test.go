package imageio

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/goraster/ipl"
)

func randomBuffer(t *testing.T, width, height int, format ipl.Format, seed int64) *ipl.Buffer {
	t.Helper()
	buf, err := ipl.NewBuffer(width, height, format)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	data := buf.Data()
	for i := range data {
		data[i] = uint8(rng.Intn(256))
	}
	return buf
}

func TestSaveLoadPNG(t *testing.T) {
	tests := []struct {
		name       string
		format     ipl.Format
		wantFormat ipl.Format
	}{
		// Opaque color PNGs decode as premultiplied RGBA and come back
		// four-channel; gray and alpha PNGs keep their exact layout.
		{"gray", ipl.FormatGray8, ipl.FormatGray8},
		{"rgb", ipl.FormatRGB8, ipl.FormatRGBA8},
		{"rgba", ipl.FormatRGBA8, ipl.FormatRGBA8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := randomBuffer(t, 12, 9, tt.format, 1)
			path := filepath.Join(t.TempDir(), "img.png")

			if err := Save(path, src); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if got.Format() != tt.wantFormat {
				t.Fatalf("format = %v, want %v", got.Format(), tt.wantFormat)
			}
			if got.Width() != 12 || got.Height() != 9 {
				t.Fatalf("dimensions = %dx%d, want 12x9", got.Width(), got.Height())
			}

			srcCh := src.Format().Channels()
			gotCh := got.Format().Channels()
			for p := 0; p < 12*9; p++ {
				for c := 0; c < srcCh && c < 3; c++ {
					if src.Data()[p*srcCh+c] != got.Data()[p*gotCh+c] {
						t.Fatalf("pixel %d channel %d = %d, want %d",
							p, c, got.Data()[p*gotCh+c], src.Data()[p*srcCh+c])
					}
				}
				if srcCh == 4 && src.Data()[p*4+3] != got.Data()[p*4+3] {
					t.Fatalf("pixel %d alpha = %d, want %d",
						p, got.Data()[p*4+3], src.Data()[p*4+3])
				}
			}
		})
	}
}

func TestSaveLoadBMP(t *testing.T) {
	src := randomBuffer(t, 8, 5, ipl.FormatRGB8, 2)
	path := filepath.Join(t.TempDir(), "img.bmp")

	if err := Save(path, src); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	gotCh := got.Format().Channels()
	for p := 0; p < 8*5; p++ {
		for c := 0; c < 3; c++ {
			if src.Data()[p*3+c] != got.Data()[p*gotCh+c] {
				t.Fatalf("pixel %d channel %d = %d, want %d",
					p, c, got.Data()[p*gotCh+c], src.Data()[p*3+c])
			}
		}
	}
}

func TestSaveLoadTIFF(t *testing.T) {
	for _, format := range []ipl.Format{ipl.FormatGray8, ipl.FormatRGBA8} {
		t.Run(format.String(), func(t *testing.T) {
			src := randomBuffer(t, 6, 7, format, 3)
			path := filepath.Join(t.TempDir(), "img.tiff")

			if err := Save(path, src); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got.Format() != format {
				t.Fatalf("format = %v, want %v", got.Format(), format)
			}
			if !bytes.Equal(got.Data(), src.Data()) {
				t.Error("TIFF round trip changed pixel data")
			}
		})
	}
}

func TestSaveLoadJPEG(t *testing.T) {
	// JPEG is lossy; a uniform image must survive within a small
	// tolerance and color files decode three-channel.
	src, err := ipl.NewBuffer(16, 16, ipl.FormatRGB8)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(src.Data()); i += 3 {
		src.Data()[i+0] = 180
		src.Data()[i+1] = 90
		src.Data()[i+2] = 45
	}

	path := filepath.Join(t.TempDir(), "img.jpg")
	if err := Save(path, src); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Format() != ipl.FormatRGB8 {
		t.Fatalf("format = %v, want FormatRGB8", got.Format())
	}

	for i, v := range got.Data() {
		want := src.Data()[i]
		diff := int(v) - int(want)
		if diff < -6 || diff > 6 {
			t.Fatalf("byte %d = %d, want %d +-6", i, v, want)
		}
	}
}

func TestSaveUnknownExtension(t *testing.T) {
	src := randomBuffer(t, 2, 2, ipl.FormatGray8, 4)
	err := Save(filepath.Join(t.TempDir(), "img.webp"), src)
	if !errors.Is(err, ipl.ErrUnsupportedFormat) {
		t.Errorf("Save err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	src := randomBuffer(t, 2, 2, ipl.FormatGray8, 5)
	var sink bytes.Buffer
	if err := Encode(&sink, src, "gif"); !errors.Is(err, ipl.ErrUnsupportedFormat) {
		t.Errorf("Encode err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestEncodeEmptyBuffer(t *testing.T) {
	var sink bytes.Buffer
	if err := Encode(&sink, &ipl.Buffer{}, "png"); !errors.Is(err, ipl.ErrInvalidArgument) {
		t.Errorf("Encode err = %v, want ErrInvalidArgument", err)
	}
}

func TestDecodeBytes(t *testing.T) {
	src := randomBuffer(t, 5, 4, ipl.FormatGray8, 6)
	var encoded bytes.Buffer
	if err := Encode(&encoded, src, "png"); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := DecodeBytes(encoded.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if !bytes.Equal(got.Data(), src.Data()) {
		t.Error("DecodeBytes round trip changed pixel data")
	}
}

func TestDecodeBytesEmpty(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ipl.ErrInvalidArgument) {
		t.Errorf("DecodeBytes(nil) err = %v, want ErrInvalidArgument", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := DecodeBytes([]byte("not an image at all")); err == nil {
		t.Error("DecodeBytes on garbage succeeded, want error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Load on a missing file succeeded, want error")
	}
}
