// Package render displays generated pages: in the terminal with glamour, as
// HTML with rsc.io/markdown, and as a styled run summary.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"rsc.io/markdown"
)

// DefaultWidth is the word-wrap width used for terminal previews.
const DefaultWidth = 100

// Terminal renders a Markdown page for display in the terminal.
func Terminal(page string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(page)
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return strings.TrimSpace(out) + "\n", nil
}

// HTML converts a Markdown page, tables included, to HTML.
func HTML(page string) string {
	p := markdown.Parser{Table: true}
	return markdown.ToHTML(p.Parse(page))
}
