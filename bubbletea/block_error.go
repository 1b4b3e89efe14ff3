package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/toolrun/agent"
	"github.com/fwojciec/toolrun/console"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders the failure that ended a run, labelled with its kind.
type ErrorBlock struct {
	kind    string
	message string
	styles  Styles
}

// NewErrorBlock creates an ErrorBlock for a failed run.
func NewErrorBlock(err error, styles Styles) *ErrorBlock {
	return &ErrorBlock{
		kind:    agent.ErrorKind(err),
		message: console.Sanitize(err.Error()),
		styles:  styles,
	}
}

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	header := b.styles.Error.Render("✗ Run failed") + " " + b.styles.Muted.Render(b.kind)
	return b.styles.Block.Width(width).Render(header + "\n" + b.styles.Error.Render(b.message))
}
