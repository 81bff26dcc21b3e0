// Package imaging provides image decoding and the background-removal
// pixel processor.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/tiff"
)

// ErrDecode indicates that a source image is not (yet) decoded and cannot
// be processed.
var ErrDecode = errors.New("imaging: image not decoded")

// Decode decodes raw image bytes. PNG, JPEG and TIFF are registered.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Load decodes an image from a file.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Decode(data)
}

// DecodeDataURL decodes a base64 data URL ("data:image/png;base64,...") as
// produced by the file-import path. Plain base64 without the prefix is also
// accepted.
func DecodeDataURL(src string) (image.Image, error) {
	payload := src
	if strings.HasPrefix(src, "data:") {
		i := strings.IndexByte(src, ',')
		if i < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		payload = src[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return Decode(data)
}

// EncodeDataURL encodes raw PNG bytes as a data URL for persistence.
func EncodeDataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}
