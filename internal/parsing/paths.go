package parsing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath rewrites an annotation or notated path for storage.
// With abs the path is made absolute; with basename only the file name is
// kept. Setting both is an error. Empty paths are returned unchanged.
func NormalizePath(path string, abs, basename bool) (string, error) {
	if abs && basename {
		return "", fmt.Errorf("absolute paths and base names cannot both be requested")
	}
	if path == "" {
		return "", nil
	}
	switch {
	case abs:
		p, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("absolute path of %s: %w", path, err)
		}
		return p, nil
	case basename:
		return filepath.Base(path), nil
	default:
		return path, nil
	}
}

// FindSibling returns the first existing file that shares path's stem and
// ends in one of exts, or "" if none exists.
// Example: ("/data/SA1.PHN", ".wav", ".WAV") -> "/data/SA1.WAV"
func FindSibling(path string, exts ...string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range exts {
		candidate := stem + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
