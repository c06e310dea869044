package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// MaxUploadBytes caps the raw upload before any decode work happens.
	MaxUploadBytes = 1000000

	avatarWidth  = 400
	avatarHeight = 400
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Normalize validates an uploaded avatar and produces the stored form:
// a PNG stretched to exactly 400x400. Aspect ratio is not preserved.
func Normalize(data []byte, filename string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, validationErrorf("unsupported avatar file type %q: please upload a jpeg, jpg or png", ext)
	}
	if len(data) > MaxUploadBytes {
		return nil, validationErrorf("avatar file too large: max %d bytes", MaxUploadBytes)
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, validationErrorf("decode avatar failed: %v", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarWidth, avatarHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode avatar png failed: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	// image.Decode may miss some encoder quirks; try the two supported
	// formats explicitly before giving up.
	if img, jerr := jpeg.Decode(bytes.NewReader(data)); jerr == nil {
		return img, nil
	}
	if img, perr := png.Decode(bytes.NewReader(data)); perr == nil {
		return img, nil
	}
	return nil, err
}
