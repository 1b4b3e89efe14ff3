// Package mcp implements [toolrun.ToolProvider] and [toolrun.ToolSession]
// over the Model Context Protocol using the official go-sdk client.
//
// A provider is configured with a transport spec string:
//
//	npx -y @openbnb/mcp-server-airbnb     bare command, stdio transport
//	stdio://./server --flag               explicit stdio transport
//	sse://mcp.example.com/sse             SSE, https assumed
//	http+sse://host/path                  SSE
//	https+stream://host/mcp               streamable HTTP
//	https://host/path                     SSE
package mcp

import "github.com/effective-security/xlog"

var logger = xlog.NewPackageLogger("github.com/fwojciec/toolrun", "mcp")

const (
	clientName    = "toolrun"
	clientVersion = "dev"
)
