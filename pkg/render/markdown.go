// Package render converts model output for display.
package render

import (
	"strings"

	"github.com/russross/blackfriday"
)

// MarkdownToHTML renders the markdown the AI providers tend to reply with
// into HTML for the web frontend.
func MarkdownToHTML(text string) string {
	return strings.TrimSpace(string(blackfriday.MarkdownCommon([]byte(text))))
}
