package imageutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"counting-down-back/internal/shared"
)

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}
	return buf.Bytes()
}

// halves рисует картинку: левая половина красная, правая синяя
func halves(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, blue)
			}
		}
	}
	return img
}

// withOrientation вклеивает минимальный EXIF APP1 сегмент с тегом ориентации
// сразу после SOI
func withOrientation(t *testing.T, jpegData []byte, orientation uint16) []byte {
	t.Helper()
	if len(jpegData) < 2 || jpegData[0] != 0xff || jpegData[1] != 0xd8 {
		t.Fatal("not a JPEG: missing SOI marker")
	}

	var exif bytes.Buffer
	exif.WriteString("Exif\x00\x00")
	exif.WriteString("MM")                                // big-endian
	binary.Write(&exif, binary.BigEndian, uint16(0x002a)) // TIFF magic
	binary.Write(&exif, binary.BigEndian, uint32(8))      // IFD0 offset
	binary.Write(&exif, binary.BigEndian, uint16(1))      // tag count
	binary.Write(&exif, binary.BigEndian, uint16(0x0112)) // orientation tag
	binary.Write(&exif, binary.BigEndian, uint16(3))      // SHORT
	binary.Write(&exif, binary.BigEndian, uint32(1))      // count
	binary.Write(&exif, binary.BigEndian, orientation)
	binary.Write(&exif, binary.BigEndian, uint16(0)) // value padding
	binary.Write(&exif, binary.BigEndian, uint32(0)) // next IFD

	var out bytes.Buffer
	out.Write(jpegData[:2])
	out.Write([]byte{0xff, 0xe1})
	binary.Write(&out, binary.BigEndian, uint16(exif.Len()+2))
	out.Write(exif.Bytes())
	out.Write(jpegData[2:])
	return out.Bytes()
}

func TestThumbnailFitsAndKeepsAspect(t *testing.T) {
	data := encodeJPEG(t, halves(2000, 1000))

	thumb, err := Thumbnail(data, 128)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if cfg.Width > 128 || cfg.Height > 128 {
		t.Errorf("thumbnail %dx%d exceeds 128", cfg.Width, cfg.Height)
	}
	// Пропорции 2:1 с точностью до округления
	if cfg.Width != 128 || cfg.Height != 64 {
		t.Errorf("thumbnail = %dx%d, want 128x64", cfg.Width, cfg.Height)
	}
}

func TestThumbnailPreservesFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, halves(300, 200)); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}

	thumb, err := Thumbnail(buf.Bytes(), 100)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
}

func TestThumbnailNormalizesOrientation(t *testing.T) {
	// Ориентация 6: пиксели лежат на боку, для показа нужен поворот на 90° CW.
	// После нормализации красная (левая) половина должна оказаться сверху.
	data := withOrientation(t, encodeJPEG(t, halves(64, 32)), 6)

	thumb, err := Thumbnail(data, 64)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 64 {
		t.Fatalf("thumbnail = %dx%d, want 32x64 after orientation fix", bounds.Dx(), bounds.Dy())
	}

	top := img.At(bounds.Dx()/2, bounds.Dy()/4)
	bottom := img.At(bounds.Dx()/2, bounds.Dy()*3/4)
	tr, _, tb, _ := top.RGBA()
	br, _, bb, _ := bottom.RGBA()
	if tr <= tb {
		t.Errorf("top pixel should be red, got r=%d b=%d", tr>>8, tb>>8)
	}
	if bb <= br {
		t.Errorf("bottom pixel should be blue, got r=%d b=%d", br>>8, bb>>8)
	}
}

func TestThumbnailInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		size int
	}{
		{"garbage bytes", []byte("definitely not an image"), 128},
		{"empty", nil, 128},
		{"zero size", encodeJPEG(t, halves(10, 10)), 0},
		{"negative size", encodeJPEG(t, halves(10, 10)), -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Thumbnail(tt.data, tt.size)
			if err == nil {
				t.Fatal("Thumbnail() error = nil, want error")
			}
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("Thumbnail() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
