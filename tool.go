package toolrun

import (
	"context"
	"encoding/json"
)

// ToolDescriptor describes one tool advertised by a tool session.
// InputSchema is passed through to the model unchanged.
type ToolDescriptor struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// ToolSession is a live, initialized connection to a tool provider.
// CallTool returns error for transport failures. ToolResult.IsError
// indicates the tool ran and reported a failure.
type ToolSession interface {
	ListTools(ctx context.Context) ([]ToolDescriptor, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error)
	Close() error
}

// ToolProvider opens tool sessions. Connect performs the initialize
// handshake; the returned session is exclusively owned by the caller, who
// must Close it.
type ToolProvider interface {
	Connect(ctx context.Context) (ToolSession, error)
}

// ToolResult represents the outcome of a tool call.
type ToolResult struct {
	IsError bool
	Content []ContentItem
}

// ContentItem is one item of tool output. Non-text items carry their Type
// and an empty Text.
type ContentItem struct {
	Type string
	Text string
}

// Content item types.
const (
	ContentText     = "text"
	ContentImage    = "image"
	ContentAudio    = "audio"
	ContentResource = "resource"
)
