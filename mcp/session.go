package mcp

import (
	"context"
	"encoding/json"
	"iter"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/fwojciec/toolrun"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Interface compliance check.
var _ toolrun.ToolSession = (*Session)(nil)

// Session is an initialized MCP client session.
type Session struct {
	mu      sync.Mutex
	session *mcpsdk.ClientSession
}

func (s *Session) current() (*mcpsdk.ClientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, toolrun.ErrNotConnected
	}
	return s.session, nil
}

// ListTools returns every tool the server advertises, following pagination.
func (s *Session) ListTools(ctx context.Context) ([]toolrun.ToolDescriptor, error) {
	cs, err := s.current()
	if err != nil {
		return nil, err
	}
	tools, err := collectTools(cs.Tools(ctx, nil))
	if err != nil {
		return nil, err
	}
	logger.ContextKV(ctx, xlog.DEBUG,
		"event", "list_tools",
		"count", len(tools))
	return tools, nil
}

// CallTool invokes the named tool. A tool-reported failure is returned as a
// result with IsError set; transport and protocol failures are errors.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*toolrun.ToolResult, error) {
	cs, err := s.current()
	if err != nil {
		return nil, err
	}
	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, convertError(errors.Wrapf(err, "mcp: call %s", name))
	}
	result := toToolResult(res)
	logger.ContextKV(ctx, xlog.DEBUG,
		"event", "call_tool",
		"tool", name,
		"is_error", result.IsError,
		"items", len(result.Content))
	return result, nil
}

// Close ends the session. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	cs := s.session
	s.session = nil
	s.mu.Unlock()
	if cs == nil {
		return nil
	}
	return cs.Close()
}

// collectTools drains a tool listing. Nil entries are skipped.
func collectTools(seq iter.Seq2[*mcpsdk.Tool, error]) ([]toolrun.ToolDescriptor, error) {
	var tools []toolrun.ToolDescriptor
	for tool, err := range seq {
		if err != nil {
			return nil, convertError(errors.Wrap(err, "mcp: list tools"))
		}
		if tool == nil {
			continue
		}
		desc, err := toToolDescriptor(tool)
		if err != nil {
			return nil, err
		}
		tools = append(tools, desc)
	}
	return tools, nil
}

func toToolDescriptor(tool *mcpsdk.Tool) (toolrun.ToolDescriptor, error) {
	desc := toolrun.ToolDescriptor{
		Name:        tool.Name,
		Description: tool.Description,
	}
	if tool.InputSchema != nil {
		raw, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return toolrun.ToolDescriptor{}, errors.Wrapf(err, "mcp: encode %s schema", tool.Name)
		}
		desc.InputSchema = raw
	}
	return desc, nil
}

func toToolResult(res *mcpsdk.CallToolResult) *toolrun.ToolResult {
	if res == nil {
		return &toolrun.ToolResult{}
	}
	out := &toolrun.ToolResult{
		IsError: res.IsError,
		Content: make([]toolrun.ContentItem, 0, len(res.Content)),
	}
	for _, c := range res.Content {
		switch ct := c.(type) {
		case *mcpsdk.TextContent:
			out.Content = append(out.Content, toolrun.ContentItem{Type: toolrun.ContentText, Text: ct.Text})
		case *mcpsdk.ImageContent:
			out.Content = append(out.Content, toolrun.ContentItem{Type: toolrun.ContentImage})
		case *mcpsdk.AudioContent:
			out.Content = append(out.Content, toolrun.ContentItem{Type: toolrun.ContentAudio})
		default:
			out.Content = append(out.Content, toolrun.ContentItem{Type: toolrun.ContentResource})
		}
	}
	return out
}
