package storage

import (
	"path"
	"regexp"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/id"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]+`)

// buildKey returns "{prefix}/{ulid}-{name}" or "{prefix}/{ulid}{ext}" when
// no filename is known.
func buildKey(prefix, name, contentType string) string {
	var parts []string
	for seg := range strings.SplitSeq(prefix, "/") {
		if seg = cleanSegment(seg); seg != "" {
			parts = append(parts, seg)
		}
	}

	file := id.NewULID()
	if name = cleanSegment(path.Base(strings.ReplaceAll(name, `\`, "/"))); name != "" && name != "." {
		file += "-" + name
	} else if ext := ExtFromMIME(contentType); ext != "" {
		file += ext
	} else {
		file += ".bin"
	}

	return strings.Join(append(parts, file), "/")
}

func cleanSegment(s string) string {
	s = strings.Trim(s, " /\\")
	s = strings.ReplaceAll(s, "..", "")
	return unsafeChars.ReplaceAllString(s, "_")
}

// validKey rejects keys that could escape the storage root.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return false
	}
	for seg := range strings.SplitSeq(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
