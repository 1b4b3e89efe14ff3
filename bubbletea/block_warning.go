package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*WarningBlock)(nil)

// WarningBlock renders a non-fatal notice such as an exhausted turn budget.
type WarningBlock struct {
	message string
	styles  Styles
}

// NewWarningBlock creates a WarningBlock.
func NewWarningBlock(message string, styles Styles) *WarningBlock {
	return &WarningBlock{message: message, styles: styles}
}

func (b *WarningBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *WarningBlock) View(width int) string {
	return lipgloss.NewStyle().Width(width).Render(b.styles.Warning.Render("⚠ " + b.message))
}
