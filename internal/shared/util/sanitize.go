package util

import (
	"errors"
	"strings"
)

// maxFileNameLen bounds stored document names; uploaded RfX names end up in
// object-store keys and database rows.
const maxFileNameLen = 255

// SanitizeFileName normalizes an uploaded document name for use in storage
// keys: path separators and control characters are replaced, traversal
// patterns are rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return '_'
		default:
			return r
		}
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if len(s) > maxFileNameLen {
		s = s[len(s)-maxFileNameLen:]
	}
	return s, nil
}
