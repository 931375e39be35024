package util

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

var (
	unsafeChars     = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	timestampPrefix = regexp.MustCompile(`^\d+-`)
)

// SanitizeFileName reduces a user-supplied file name to a restricted character
// set and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = unsafeChars.ReplaceAllString(s, "_")
	if s == "" || timestampPrefix.ReplaceAllString(s, "") == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// TimestampKey prefixes a name with the current epoch milliseconds so
// repeated uploads of the same name never collide in the flat namespace.
func TimestampKey(name string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), name)
}

// StripTimestampPrefix removes a leading `<digits>-` marker from a name.
func StripTimestampPrefix(name string) string {
	return timestampPrefix.ReplaceAllString(name, "")
}

// DisplayName derives the user-facing file name from a storage key: the base
// name with the timestamp prefix removed.
func DisplayName(key string) string {
	base := path.Base(key)
	stripped := StripTimestampPrefix(base)
	if stripped == "" {
		return base
	}
	return stripped
}
