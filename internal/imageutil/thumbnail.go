package imageutil

import (
	"bytes"
	"fmt"
	"image"

	"counting-down-back/internal/shared"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const jpegQuality = 85

var formats = map[string]imaging.Format{
	"jpeg": imaging.JPEG,
	"png":  imaging.PNG,
	"gif":  imaging.GIF,
	"tiff": imaging.TIFF,
	"bmp":  imaging.BMP,
}

// Thumbnail декодирует изображение, приводит пиксели к "вертикальному"
// положению по EXIF-ориентации, вписывает в квадрат size x size с сохранением
// пропорций и кодирует обратно в исходный формат.
//
// Камеры часто хранят поворот в метаданных, а не в пикселях; без нормализации
// миниатюра получилась бы лежащей на боку.
func Thumbnail(data []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, shared.InvalidInputf("thumbnail size must be positive, got %d", size)
	}

	// Формат читаем из заголовка до полного декодирования
	_, formatName, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, shared.InvalidInputf("cannot decode image: %v", err)
	}
	format, ok := formats[formatName]
	if !ok {
		return nil, shared.InvalidInputf("unsupported image format %q", formatName)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, shared.InvalidInputf("cannot decode image: %v", err)
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
