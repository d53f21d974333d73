package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds a variable name or an implicit "context.element" key
// for fuzzy matching: letters are lowercased and separators (_, -, ., space)
// are dropped, so "patientName", "patient_name" and "patient.name" agree.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
