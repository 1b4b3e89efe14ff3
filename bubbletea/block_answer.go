package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/toolrun"
	"github.com/fwojciec/toolrun/markdown"
)

var _ MessageBlock = (*AnswerBlock)(nil)

// AnswerBlock renders the final answer as markdown under a success label.
// Rendered output is cached per width.
type AnswerBlock struct {
	text    string
	theme   toolrun.Theme
	styles  Styles
	byWidth map[int]string
}

// NewAnswerBlock creates an AnswerBlock.
func NewAnswerBlock(text string, theme toolrun.Theme, styles Styles) *AnswerBlock {
	return &AnswerBlock{text: text, theme: theme, styles: styles, byWidth: make(map[int]string)}
}

func (b *AnswerBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AnswerBlock) View(width int) string {
	label := b.styles.Success.Render("Agent response:")
	if b.text == "" || width <= 0 {
		return label
	}
	rendered, ok := b.byWidth[width]
	if !ok {
		rendered = markdown.Render(b.text, width, b.theme)
		b.byWidth[width] = rendered
	}
	return label + "\n" + rendered
}
