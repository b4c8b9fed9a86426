package markdown

import (
	"regexp"
	"strings"
)

var (
	fencePattern  = regexp.MustCompile("(?s)```.*?```")
	linkPattern   = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	markupPattern = regexp.MustCompile("[*_`#>~|]+")
)

// Excerpt returns the first n words of the body with markdown syntax removed,
// followed by an ellipsis when the text was cut.
func Excerpt(text string, n int) string {
	text = fencePattern.ReplaceAllString(text, " ")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = markupPattern.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	if n <= 0 || len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}
