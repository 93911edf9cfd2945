// Package id normalizes display names into the canonical identifiers used
// across usage statistics, dex data, and battle protocol messages.
package id

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a display name to its identifier: diacritics removed,
// lowercased, with everything outside [a-z0-9] dropped. "Flabébé" and
// "flabebe" map to the same identifier, as do "Mr. Mime" and "mrmime".
func Make(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Equal reports whether two display names normalize to the same identifier.
func Equal(a, b string) bool {
	return Make(a) == Make(b)
}
