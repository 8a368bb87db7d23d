// Package normalize holds the single canonical sector-name transform. The old
// system repeated this logic ad hoc in several places with diverging
// whitespace and casing rules, which made allow-list membership checks fail
// silently; every sector comparison must go through Sector.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sector canonicalizes a sector name for comparison: diacritics removed,
// lowercased, spaces and hyphens dropped. Other punctuation is preserved.
func Sector(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		// Mark removal cannot fail on valid UTF-8; fall back to the raw
		// string so a comparison still happens rather than panicking in
		// the access-control path.
		folded = name
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SectorEquals reports whether two sector names refer to the same sector
// under the canonical transform.
func SectorEquals(a, b string) bool {
	return Sector(a) == Sector(b)
}
