// Package textmatch provides the string normalization and similarity
// primitives used to compare noisy user-supplied book references against
// API metadata. All comparisons are bilingual aware: Hebrew letters are
// preserved by normalization and Hebrew script presence is detectable.
package textmatch

import (
	"strings"
	"unicode"
)

// Normalize prepares a string for comparison: lowercase, niqqud
// (Hebrew combining marks U+0591-U+05C7) removed, punctuation stripped
// down to letters and digits, whitespace collapsed to single spaces.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	lastSpace := true // leading whitespace gets trimmed
	for _, r := range strings.ToLower(s) {
		switch {
		case isNiqqud(r):
			// skip combining marks entirely
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		default:
			// punctuation and symbols are dropped
		}
	}

	return strings.TrimRight(sb.String(), " ")
}

// isNiqqud reports whether r is a Hebrew vocalization mark
// (niqqud or cantillation).
func isNiqqud(r rune) bool {
	return r >= 0x0591 && r <= 0x05C7
}

// ContainsHebrew reports whether s contains at least one character
// from the Hebrew Unicode block. Used as the script signal when
// deciding between user input and API output.
func ContainsHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}
