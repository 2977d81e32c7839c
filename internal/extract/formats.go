package extract

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for container extensions the extractor
// does not accept.
var ErrUnsupportedFormat = errors.New("unsupported video format")

// SupportedFormats lists the accepted container extensions.
var SupportedFormats = []string{".mp4", ".avi", ".mov", ".mkv", ".flv", ".wmv"}

// IsSupported reports whether the file extension is an accepted video
// container. The check is case-insensitive.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedFormats {
		if ext == s {
			return true
		}
	}
	return false
}
