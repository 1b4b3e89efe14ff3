package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/toolrun"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Prompt   lipgloss.Style
	ToolCall lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Block    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t toolrun.Theme) Styles {
	return Styles{
		Prompt:   lipgloss.NewStyle().Foreground(ansiColor(t.Prompt)).Bold(true),
		ToolCall: lipgloss.NewStyle().Foreground(ansiColor(t.ToolCall)),
		Warning:  lipgloss.NewStyle().Foreground(ansiColor(t.Warning)).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:  lipgloss.NewStyle().Foreground(ansiColor(t.Success)).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Block:    lipgloss.NewStyle().PaddingLeft(1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
