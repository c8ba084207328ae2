package shared

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var plainText = bluemonday.StrictPolicy()

// PlainText strips markup from rich-text content (hero titles embed <br /> and <span> tags)
// so it can be rendered in a terminal. Line breaks become newlines and entities are unescaped.
func PlainText(s string) string {
	for _, br := range []string{"<br />", "<br/>", "<br>"} {
		s = strings.ReplaceAll(s, br, "\n")
	}

	stripped := html.UnescapeString(plainText.Sanitize(s))

	lines := strings.Split(stripped, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
