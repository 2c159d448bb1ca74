package registry

import (
	"regexp"
	"strings"
)

// maxLocalPartLen bounds a sanitized local part.
const maxLocalPartLen = 32

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^a-z0-9._-]`)
	dotRunRe     = regexp.MustCompile(`\.+`)
)

// SanitizeLocalPart normalizes free-form user input into an email local part:
// lowercase, whitespace becomes dots, disallowed characters are stripped,
// dot runs collapse, leading/trailing dots are trimmed, and the result is
// capped at 32 characters. An empty result means the input was unusable.
// The function is idempotent.
func SanitizeLocalPart(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = whitespaceRe.ReplaceAllString(s, ".")
	s = disallowedRe.ReplaceAllString(s, "")
	s = dotRunRe.ReplaceAllString(s, ".")
	s = strings.Trim(s, ".")
	if len(s) > maxLocalPartLen {
		s = s[:maxLocalPartLen]
		// Truncation may expose a trailing dot.
		s = strings.TrimRight(s, ".")
	}
	return s
}
