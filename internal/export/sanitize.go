package export

import "strings"

// Sanitize maps a display string to a filesystem-safe path segment by
// replacing each reserved character with an underscore. Everything else,
// Unicode included, passes through unchanged.
//
// Idempotent. No truncation and no collision handling: two names that differ
// only in reserved characters sanitize to the same segment and the later
// write wins.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		default:
			return r
		}
	}, name)
}
