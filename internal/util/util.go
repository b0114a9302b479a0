package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const maxFileNameLength = 100

// Checksum returns the hex encoded SHA256 of everything read from r.
func Checksum(r io.Reader) (string, error) {
	sha256Hash := sha256.New()

	if _, err := io.Copy(sha256Hash, r); err != nil {
		return "", errors.Wrap(err, "failed to calculate checksum")
	}

	return hex.EncodeToString(sha256Hash.Sum(nil)), nil
}

// SanitizeFileName keeps the base name of an upload with only letters, digits, dot, dash and underscore.
func SanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		return "file"
	}

	var sanitized strings.Builder
	sanitized.Grow(len(base))
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sanitized.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			sanitized.WriteRune(r)
		case unicode.IsSpace(r):
			sanitized.WriteRune('_')
		}
	}

	result := strings.TrimLeft(sanitized.String(), ".")
	if result == "" {
		return "file"
	}
	if len(result) > maxFileNameLength {
		ext := path.Ext(result)
		if len(ext) >= maxFileNameLength {
			ext = ""
		}
		result = result[:maxFileNameLength-len(ext)] + ext
	}

	return result
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
