package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// CleanName trims and collapses internal whitespace in a categorical value
// (analyst, category) so that spacing variants group together. Case is
// preserved because the values are displayed as-is.
func CleanName(s string) string {
	s = strings.TrimSpace(s)
	return multiSpace.ReplaceAllString(s, " ")
}
