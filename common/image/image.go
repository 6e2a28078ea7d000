package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// Matches any base64 data URL, not just images: generated video payloads
// round-trip through the same encoding.
var dataURLPattern = regexp.MustCompile(`^data:([^;,]+);base64,(.*)$`)

// DecodeDataURL splits a base64 data URL into its MIME type and raw bytes.
func DecodeDataURL(url string) (mimeType string, data []byte, err error) {
	matches := dataURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if len(matches) != 3 {
		return "", nil, errors.Errorf("not a base64 data URL")
	}
	decoded, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", nil, errors.Wrap(err, "decode data URL payload")
	}
	return matches[1], decoded, nil
}

// EncodeDataURL is the inverse of DecodeDataURL. An empty mimeType is
// sniffed from the payload.
func EncodeDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DetectMimeType(data)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// IsDataURL reports whether url is a base64 data URL.
func IsDataURL(url string) bool {
	return dataURLPattern.MatchString(strings.TrimSpace(url))
}

// DetectMimeType sniffs the content type from the first bytes of data.
func DetectMimeType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}

var readerPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Reader{}
	},
}

// GetImageSize returns the pixel dimensions of a raw image payload.
func GetImageSize(data []byte) (width int, height int, err error) {
	reader := readerPool.Get().(*bytes.Reader)
	defer readerPool.Put(reader)
	reader.Reset(data)

	img, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, err
	}
	return img.Width, img.Height, nil
}

// GetImageSizeFromDataURL decodes a data URL and returns its dimensions.
func GetImageSizeFromDataURL(url string) (width int, height int, err error) {
	_, data, err := DecodeDataURL(url)
	if err != nil {
		return 0, 0, err
	}
	return GetImageSize(data)
}
