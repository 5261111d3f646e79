// Package canon implements the canonical string forms used for matching:
// node names are trimmed, whitespace-collapsed, and case-folded; category
// names are additionally decomposed and stripped of diacritics.
package canon

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Node returns the canonical form of a location name: trimmed, inner
// whitespace collapsed to single spaces, lower-cased. Used for node
// identity and metrics-table lookups.
func Node(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Category normalizes a free-text category name: NFD decompose, drop
// combining marks, lower-case, replace anything that is not a letter or a
// space with a space, collapse whitespace, trim. Returns "" when nothing
// survives normalization.
func Category(name string) string {
	decomposed := norm.NFD.String(name)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from decomposition, dropped
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
