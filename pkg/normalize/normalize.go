// Package normalize provides the string fold used for derived company emails
// and for case-insensitive uniqueness comparisons (company names, visitor
// emails). The same fold must be applied on both the write and the compare
// side, otherwise duplicate checks diverge from what is stored.
package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold strips diacritics (é → e), lowercases, and removes all whitespace.
// Folding is total: inputs that fail to transform fall back to a plain
// lowercase/trim so a comparison never errors.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, out)
}

// TitleCase normalizes a name for storage: lowercased, then the first letter
// of each space- or hyphen-separated part is capitalized ("mary-jane o'neil"
// → "Mary-Jane O'neil" style, matching what the registration desk displays).
func TitleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	upperNext := true
	for _, r := range s {
		if upperNext && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		if r == ' ' || r == '-' {
			upperNext = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CompanyEmail derives an employee's company email from name, title, and
// company name: first.last.title@company.com, each component folded. The
// derivation is deterministic so uniqueness checks behave identically across
// create and update.
func CompanyEmail(firstName, lastName, title, companyName string) string {
	return fmt.Sprintf("%s.%s.%s@%s.com",
		Fold(firstName), Fold(lastName), Fold(title), Fold(companyName))
}
