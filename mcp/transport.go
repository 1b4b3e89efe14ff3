package mcp

import (
	"context"
	"io"
	"net/url"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	stdioSchemePrefix = "stdio://"
	sseSchemePrefix   = "sse://"
	httpHintType      = "http"
	sseHintType       = "sse"
)

// buildTransport parses a transport spec. stderr, when set, receives the
// standard error of a stdio server process.
func buildTransport(ctx context.Context, spec string, stderr io.Writer) (mcpsdk.Transport, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New("mcp: transport spec is empty")
	}

	lowered := strings.ToLower(spec)
	switch {
	case strings.HasPrefix(lowered, stdioSchemePrefix):
		return buildStdioTransport(ctx, spec[len(stdioSchemePrefix):], stderr)
	case strings.HasPrefix(lowered, sseSchemePrefix):
		endpoint, err := normalizeHTTPURL(spec[len(sseSchemePrefix):], true)
		if err != nil {
			return nil, errors.Wrap(err, "mcp: invalid SSE endpoint")
		}
		return &mcpsdk.SSEClientTransport{Endpoint: endpoint}, nil
	}

	kind, endpoint, matched, err := parseHTTPFamilySpec(spec)
	if err != nil {
		return nil, err
	}
	if matched {
		if kind == httpHintType {
			return &mcpsdk.StreamableClientTransport{Endpoint: endpoint}, nil
		}
		return &mcpsdk.SSEClientTransport{Endpoint: endpoint}, nil
	}

	if strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://") {
		endpoint, err := normalizeHTTPURL(spec, false)
		if err != nil {
			return nil, errors.Wrap(err, "mcp: invalid SSE endpoint")
		}
		return &mcpsdk.SSEClientTransport{Endpoint: endpoint}, nil
	}

	return buildStdioTransport(ctx, spec, stderr)
}

func buildStdioTransport(ctx context.Context, cmdSpec string, stderr io.Writer) (mcpsdk.Transport, error) {
	parts := strings.Fields(cmdSpec)
	if len(parts) == 0 {
		return nil, errors.New("mcp: stdio command is empty")
	}
	// #nosec G204 -- the command comes from the operator's -server flag
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stderr = stderr
	return &mcpsdk.CommandTransport{Command: cmd}, nil
}

// parseHTTPFamilySpec recognizes http+<hint>:// and https+<hint>:// specs.
func parseHTTPFamilySpec(spec string) (kind string, endpoint string, matched bool, err error) {
	u, parseErr := url.Parse(spec)
	if parseErr != nil || u.Scheme == "" {
		return "", "", false, nil
	}
	base, hint, hasHint := strings.Cut(strings.ToLower(u.Scheme), "+")
	if !hasHint || (base != "http" && base != "https") {
		return "", "", false, nil
	}
	hint, _, _ = strings.Cut(hint, "+")
	switch hint {
	case "sse":
		kind = sseHintType
	case "stream", "streamable", "http", "json":
		kind = httpHintType
	default:
		return "", "", true, errors.Newf("mcp: unsupported HTTP transport hint %q", hint)
	}
	normalized := *u
	normalized.Scheme = base
	endpoint, err = normalizeHTTPURL(normalized.String(), false)
	if err != nil {
		return "", "", true, errors.Wrapf(err, "mcp: invalid %s endpoint", kind)
	}
	return kind, endpoint, true, nil
}

func normalizeHTTPURL(raw string, guessScheme bool) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("endpoint is empty")
	}
	if guessScheme && !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", errors.Newf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", errors.New("missing host")
	}
	parsed.Scheme = scheme
	return parsed.String(), nil
}
