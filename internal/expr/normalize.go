package expr

import (
	"strings"
	"unicode"
)

// Normalize removes every whitespace character from s.
//
// OCR output usually contains spaces between tokens and a trailing newline.
// Normalize is idempotent.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
