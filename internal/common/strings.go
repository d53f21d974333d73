package common

import (
	"bytes"
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// FirstNonEmpty returns the first argument that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}

	return ""
}

// TrimDot removes a single trailing "." from a dotted path.
// A bare "." (a structure root) becomes the empty string.
func TrimDot(path string) string {
	return strings.TrimSuffix(path, ".")
}

var utf8BOM = []byte("\xef\xbb\xbf")

// TrimBOM drops a leading UTF-8 byte order mark.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// IsJSONObject reports whether the first non-space byte of data opens a JSON object.
func IsJSONObject(data []byte) bool {
	trimmed := bytes.TrimLeft(TrimBOM(data), " \t\r\n")

	return len(trimmed) > 0 && trimmed[0] == '{'
}
