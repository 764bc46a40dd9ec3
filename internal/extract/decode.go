package extract

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupportedType is returned by Decode for MIME types it cannot read.
var ErrUnsupportedType = errors.New("unsupported image type")

var decoders = map[string]func(io.Reader) (image.Image, error){
	"image/png":  png.Decode,
	"image/jpeg": jpeg.Decode,
	"image/jpg":  jpeg.Decode,
	"image/gif":  gif.Decode,
	"image/webp": webp.Decode,
	"image/bmp":  bmp.Decode,
}

// SupportedTypes lists the MIME types Decode accepts.
func SupportedTypes() []string {
	return []string{"image/png", "image/jpeg", "image/gif", "image/webp", "image/bmp"}
}

// Decode reads an image of the given MIME type. Media type parameters such
// as "; charset=binary" are ignored.
func Decode(r io.Reader, mime string) (image.Image, error) {
	mediaType, _, _ := strings.Cut(mime, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	decode, ok := decoders[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, mime)
	}
	img, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mediaType, err)
	}
	return img, nil
}
