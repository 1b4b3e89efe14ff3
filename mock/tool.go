package mock

import (
	"context"

	"github.com/fwojciec/toolrun"
)

// Interface compliance checks.
var (
	_ toolrun.ToolSession  = (*ToolSession)(nil)
	_ toolrun.ToolProvider = (*ToolProvider)(nil)
)

// ToolSession is a test double for toolrun.ToolSession.
// Set the function fields for the methods you need.
type ToolSession struct {
	ListToolsFn func(ctx context.Context) ([]toolrun.ToolDescriptor, error)
	CallToolFn  func(ctx context.Context, name string, args map[string]any) (*toolrun.ToolResult, error)
	CloseFn     func() error
}

// ListTools delegates to ListToolsFn.
func (s *ToolSession) ListTools(ctx context.Context) ([]toolrun.ToolDescriptor, error) {
	return s.ListToolsFn(ctx)
}

// CallTool delegates to CallToolFn.
func (s *ToolSession) CallTool(ctx context.Context, name string, args map[string]any) (*toolrun.ToolResult, error) {
	return s.CallToolFn(ctx, name, args)
}

// Close delegates to CloseFn.
func (s *ToolSession) Close() error {
	return s.CloseFn()
}

// ToolProvider is a test double for toolrun.ToolProvider.
// Set ConnectFn before calling Connect.
type ToolProvider struct {
	ConnectFn func(ctx context.Context) (toolrun.ToolSession, error)
}

// Connect delegates to ConnectFn.
func (p *ToolProvider) Connect(ctx context.Context) (toolrun.ToolSession, error) {
	return p.ConnectFn(ctx)
}
