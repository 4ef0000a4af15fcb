package normalize

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// Code trims surrounding whitespace from a diagnosis or procedure code. Codes
// are otherwise kept verbatim since the trimmed code is the identity links
// refer to.
func Code(s string) string {
	return strings.TrimSpace(s)
}

// CodeKey folds a code for fuzzy comparison: uppercased with punctuation
// stripped, so "m54.5" and "M545" compare equal. Returns "" for blank input.
func CodeKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(s), "")
}
