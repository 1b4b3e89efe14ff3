package mcp

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/fwojciec/toolrun"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Interface compliance check.
var _ toolrun.ToolProvider = (*Provider)(nil)

// Provider connects to one MCP server. Each Connect starts a new session;
// for stdio specs that means a new server process.
type Provider struct {
	spec      string
	name      string
	version   string
	stderr    io.Writer
	transport func(ctx context.Context) (mcpsdk.Transport, error)
}

// Option configures a [Provider].
type Option func(*Provider)

// WithClientInfo sets the client name and version sent in the initialize
// handshake.
func WithClientInfo(name, version string) Option {
	return func(p *Provider) {
		p.name = name
		p.version = version
	}
}

// WithStderr forwards the standard error of a stdio server process to w.
func WithStderr(w io.Writer) Option {
	return func(p *Provider) { p.stderr = w }
}

// WithTransport replaces spec parsing with a fixed transport factory.
func WithTransport(fn func(ctx context.Context) (mcpsdk.Transport, error)) Option {
	return func(p *Provider) { p.transport = fn }
}

// New creates a Provider for the given transport spec.
func New(spec string, opts ...Option) *Provider {
	p := &Provider{
		spec:    spec,
		name:    clientName,
		version: clientVersion,
	}
	p.transport = func(ctx context.Context) (mcpsdk.Transport, error) {
		return buildTransport(ctx, p.spec, p.stderr)
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Connect opens a transport and performs the initialize handshake. The
// caller owns the returned session and must Close it.
func (p *Provider) Connect(ctx context.Context) (toolrun.ToolSession, error) {
	transport, err := p.transport(ctx)
	if err != nil {
		return nil, err
	}
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: p.name, Version: p.version}, nil)
	cs, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, convertError(errors.Wrap(err, "mcp: connect"))
	}
	logger.ContextKV(ctx, xlog.DEBUG,
		"event", "connected",
		"spec", p.spec)
	return &Session{session: cs}, nil
}
