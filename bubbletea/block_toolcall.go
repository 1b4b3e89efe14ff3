package bubbletea

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/toolrun"
	"github.com/fwojciec/toolrun/console"
)

var _ MessageBlock = (*ToolCallBlock)(nil)

// ToolCallBlock renders the notice for a tool call. Collapsed, the notice is
// cut to one line; expanded, the arguments are shown indented.
type ToolCallBlock struct {
	call      toolrun.EventToolCall
	collapsed bool
	styles    Styles
}

// NewToolCallBlock creates a ToolCallBlock that starts collapsed.
func NewToolCallBlock(call toolrun.EventToolCall, styles Styles) *ToolCallBlock {
	return &ToolCallBlock{call: call, collapsed: true, styles: styles}
}

// Name returns the called tool's name.
func (b *ToolCallBlock) Name() string { return b.call.Name }

// Collapsible reports that the block responds to ToggleMsg.
func (b *ToolCallBlock) Collapsible() bool { return true }

func (b *ToolCallBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ToolCallBlock) View(width int) string {
	if b.collapsed {
		line := console.Truncate("▶ "+b.call.Notice(), width-1)
		return b.styles.Block.Width(width).Render(b.styles.ToolCall.Render(line))
	}
	header := b.styles.ToolCall.Render("▼ Calling MCP tool: `" + b.call.Name + "`")
	return b.styles.Block.Width(width).Render(header + "\n" + b.styles.Muted.Render(indentArgs(b.call.Args)))
}

func indentArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	out, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		return toolrun.FormatArgs(args)
	}
	return string(out)
}
