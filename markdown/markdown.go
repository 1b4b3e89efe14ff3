// Package markdown renders the agent's markdown answer to ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
//
// Answers about listings tend to mix headings, bulleted results with links
// and the occasional comparison table, so GitHub-flavored tables and
// strikethrough are supported alongside CommonMark.
package markdown

import "github.com/fwojciec/toolrun"

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// kept verbatim.
func Render(source string, width int, theme toolrun.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newRenderer(theme, width).render([]byte(source))
}
