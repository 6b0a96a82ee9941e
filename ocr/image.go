package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// Normalize converts image data to PNG so every image reaches Tesseract in
// one format. PNG input is returned unchanged. JPEG, GIF, TIFF (including
// the CCITT fax images scanners produce), BMP and WebP are decoded and
// re-encoded without compression.
func Normalize(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, pngMagic) {
		return data, nil
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}

	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.NoCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to convert %s to PNG: %w", name, err)
	}
	return buf.Bytes(), nil
}
