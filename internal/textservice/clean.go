package textservice

import (
	"regexp"
	"strings"
)

var (
	listMarker = regexp.MustCompile(`(?m)^\s*-\s*`)
	digits     = regexp.MustCompile(`[0-9,]`)
	whitespace = regexp.MustCompile(`\s+`)

	markup = strings.NewReplacer("**", "", "[", "", "]", "")
)

// Clean strips the markdown a completion model tends to add. The steps run in
// a fixed order: bold markers, brackets, "###", leading list dashes, digits and
// commas, then whitespace is collapsed and the result trimmed.
func Clean(s string) string {
	s = markup.Replace(s)
	s = strings.ReplaceAll(s, "###", "")
	s = listMarker.ReplaceAllString(s, "")
	s = digits.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
