// Package avatar validates profile images before they enter the upload
// pipeline. Validation happens at the ingestion boundary so oversized or
// non-image payloads are rejected before any storage work is attempted.
package avatar

import (
	"fmt"
	"net/http"
)

// MaxBytes is the default upper bound on an avatar payload.
const MaxBytes = 5 << 20

// extensions maps accepted content types to the file extension used for
// the stored object key.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Validate checks the payload against the size cap and the accepted image
// types, returning the sniffed content type. The type is detected from the
// bytes themselves rather than trusted from the request, so a renamed
// executable does not pass as a png. A maxBytes of zero or less falls back
// to MaxBytes.
func Validate(data []byte, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = MaxBytes
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrUnsupportedType)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(data), maxBytes)
	}

	contentType := http.DetectContentType(data)
	if _, ok := extensions[contentType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return contentType, nil
}

// Extension returns the object-key extension for an accepted content type.
func Extension(contentType string) string {
	if ext, ok := extensions[contentType]; ok {
		return ext
	}
	return "bin"
}
