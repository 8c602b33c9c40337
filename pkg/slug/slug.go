// Package slug turns display names into URL-safe identifiers.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLength = 120

// stripDiacritics decomposes characters and drops the combining marks, so
// locale-specific letters fold to their ASCII base (ğ -> g, ü -> u, é -> e).
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// special cases that do not decompose to an ASCII base
var replacer = strings.NewReplacer(
	"ı", "i", "İ", "i",
	"ø", "o", "Ø", "o",
	"æ", "ae", "Æ", "ae",
	"ß", "ss",
	"đ", "d", "Đ", "d",
	"ł", "l", "Ł", "l",
)

// Make normalizes text into a slug: lower-case ASCII letters and digits
// separated by single dashes, capped at 120 characters.
func Make(text string) string {
	text = replacer.Replace(text)

	if folded, _, err := transform.String(stripDiacritics, text); err == nil {
		text = folded
	}

	text = strings.ToLower(text)

	var b strings.Builder
	lastDash := true // swallow leading dashes
	for _, r := range text {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if len(s) > maxLength {
		s = strings.TrimRight(s[:maxLength], "-")
	}
	return s
}

// WithSuffix appends a collision counter, "base-2", "base-3", ...
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
