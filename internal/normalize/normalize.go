// Package normalize folds free-form query text into the canonical form
// shared by the store adapter, the suggestion engine, and cache keys.
//
// Folding is idempotent: Fold(Fold(s)) == Fold(s) for every input.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a query term. Steps, in order: lowercase, strip
// combining diacritics, apply the hyphen rule (removed inside code-like
// tokens that carry digits, otherwise treated as a word separator),
// replace remaining punctuation with spaces, collapse whitespace.
func Fold(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	s = strings.ToLower(s)

	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}

	// Hyphens inside infraction codes ("5169-1") are noise; hyphens in
	// prose ("auto-escola") separate words.
	if strings.ContainsRune(s, '-') {
		if containsDigit(s) {
			s = strings.ReplaceAll(s, "-", "")
		} else {
			s = strings.ReplaceAll(s, "-", " ")
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// IsNumeric reports whether s is non-empty and consists only of ASCII
// digits. The query pipeline uses it to classify folded input as an
// infraction code.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Tokens splits a folded string into its words.
func Tokens(s string) []string {
	return strings.Fields(Fold(s))
}

// WordsLower splits s into lowercased words, keeping diacritics.
// Punctuation and digits separate words. The suggestion vocabulary is
// built from these so that corrections surface the catalog's own
// accented spelling.
func WordsLower(s string) []string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}
