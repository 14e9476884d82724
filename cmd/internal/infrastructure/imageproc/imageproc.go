package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	MaxDimension = 1600
	JPEGQuality  = 85
)

// ValidExtensions are the upload formats accepted for subscriber images.
var ValidExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ToJPEG decodes any accepted upload, applies its EXIF orientation, shrinks
// it to fit MaxDimension and re-encodes it as JPEG.
func ToJPEG(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}

	if !isImage(data) {
		return nil, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = fit(img)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxDimension && b.Dy() <= MaxDimension {
		return img
	}
	return imaging.Fit(img, MaxDimension, MaxDimension, imaging.CatmullRom)
}

func isImage(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(http.DetectContentType(head), "image/")
}
