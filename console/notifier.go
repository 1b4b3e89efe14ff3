// Package console writes progress events and the final answer to a plain
// terminal stream. It is used for non-interactive runs.
package console

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/toolrun"
	"github.com/fwojciec/toolrun/markdown"
)

// Interface compliance check.
var _ toolrun.Notifier = (*Notifier)(nil)

const defaultWidth = 100

// Notifier renders events as styled lines.
type Notifier struct {
	mu     sync.Mutex
	w      io.Writer
	width  int
	theme  toolrun.Theme
	call   lipgloss.Style
	result lipgloss.Style
	failed lipgloss.Style
	warn   lipgloss.Style
	done   lipgloss.Style
}

// Option configures a [Notifier].
type Option func(*Notifier)

// WithWidth sets the line width used for previews and markdown wrapping.
func WithWidth(width int) Option {
	return func(n *Notifier) {
		if width > 0 {
			n.width = width
		}
	}
}

// WithTheme sets the color theme.
func WithTheme(theme toolrun.Theme) Option {
	return func(n *Notifier) { n.theme = theme }
}

// New creates a Notifier writing to w.
func New(w io.Writer, opts ...Option) *Notifier {
	n := &Notifier{w: w, width: defaultWidth, theme: toolrun.DefaultTheme()}
	for _, o := range opts {
		o(n)
	}
	n.call = lipgloss.NewStyle().Foreground(color(n.theme.ToolCall))
	n.result = lipgloss.NewStyle().Foreground(color(n.theme.Muted))
	n.failed = lipgloss.NewStyle().Foreground(color(n.theme.Error))
	n.warn = lipgloss.NewStyle().Foreground(color(n.theme.Warning)).Bold(true)
	n.done = lipgloss.NewStyle().Foreground(color(n.theme.Success)).Bold(true)
	return n
}

// Notify writes one event. Write errors are ignored.
func (n *Notifier) Notify(e toolrun.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch ev := e.(type) {
	case toolrun.EventToolCall:
		n.println(n.call.Render(Truncate(ev.Notice(), n.width)))
	case toolrun.EventToolResult:
		style := n.result
		if ev.IsError {
			style = n.failed
		}
		n.println(style.Render("  ↳ " + Preview(Sanitize(ev.Content), n.width-4)))
	case toolrun.EventWarning:
		n.println(n.warn.Render("⚠ " + ev.Message))
	case toolrun.EventAnswer:
		n.println(n.done.Render("Agent response:"))
		if ev.Text != "" {
			n.println(markdown.Render(ev.Text, n.width, n.theme))
		}
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (n *Notifier) println(s string) {
	_, _ = fmt.Fprintln(n.w, s)
}
