package ingest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeIngredient canonicalizes an ingredient key before any join or
// comparison: whitespace is trimmed and collapsed, and each word is
// title-cased, so "  olive  oil " and "OLIVE OIL" resolve to "Olive Oil".
func NormalizeIngredient(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	// Casers are stateful; create one per call rather than sharing.
	return cases.Title(language.English).String(strings.ToLower(s))
}
