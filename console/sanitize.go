package console

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes tool output safe to print: escape sequences and control
// characters other than tab and newline are removed, CRLF becomes LF, and a
// lone CR overwrites the start of its line as a terminal would.
func Sanitize(s string) string {
	s = strings.ReplaceAll(ansi.Strip(s), "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = sanitizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func sanitizeLine(line string) string {
	var buf []rune
	col := 0
	for _, r := range line {
		switch {
		case r == '\r':
			col = 0
		case r == '\t' || r > 0x1F && r != 0x7F:
			if col < len(buf) {
				buf[col] = r
			} else {
				buf = append(buf, r)
			}
			col++
		}
	}
	return string(buf)
}
