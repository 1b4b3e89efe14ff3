package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/toolrun/console"
)

var _ MessageBlock = (*ToolResultBlock)(nil)

const maxPreviewWidth = 60

// ToolResultBlock renders a tool result with a collapsible toggle.
// Success results start collapsed; error results are always expanded.
type ToolResultBlock struct {
	toolName  string
	content   string
	isError   bool
	collapsed bool
	styles    Styles
}

// NewToolResultBlock creates a ToolResultBlock. Content is sanitized for
// terminal display.
func NewToolResultBlock(toolName, content string, isError bool, styles Styles) *ToolResultBlock {
	return &ToolResultBlock{
		toolName:  toolName,
		content:   console.Sanitize(content),
		isError:   isError,
		collapsed: !isError,
		styles:    styles,
	}
}

// IsError reports whether this tool result represents an error.
func (b *ToolResultBlock) IsError() bool { return b.isError }

// Collapsible reports whether the block responds to ToggleMsg.
func (b *ToolResultBlock) Collapsible() bool { return !b.isError }

func (b *ToolResultBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok && !b.isError {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ToolResultBlock) View(width int) string {
	statusIcon, iconStyle := "✓", b.styles.Success
	if b.isError {
		statusIcon, iconStyle = "✗", b.styles.Error
	}
	indicator := "▼ "
	if b.collapsed {
		indicator = "▶ "
	}
	header := b.styles.ToolCall.Render(indicator+b.toolName) + " " + iconStyle.Render(statusIcon)
	content := header
	switch {
	case b.content == "":
	case b.collapsed:
		content += "  " + b.styles.Muted.Render(console.Preview(b.content, maxPreviewWidth))
	case b.isError:
		content += "\n" + b.styles.Error.Render(b.content)
	default:
		content += "\n" + b.content
	}
	return b.styles.Block.Width(width).Render(content)
}
