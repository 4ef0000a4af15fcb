package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// Label collapses runs of whitespace and trims the input. Case is kept.
func Label(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}
