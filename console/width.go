package console

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Truncate shortens s to at most width terminal cells, ending with an
// ellipsis when cut. Width is measured per grapheme cluster so emoji and
// combined characters count once.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Preview returns the first line of s truncated to width, with an ellipsis
// when more lines follow.
func Preview(s string, width int) string {
	first, rest, more := strings.Cut(strings.TrimSpace(s), "\n")
	if more && strings.TrimSpace(rest) != "" {
		return Truncate(first+" "+ellipsis, width)
	}
	return Truncate(first, width)
}
