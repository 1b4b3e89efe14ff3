package agent

import (
	"context"
	"io"
	"net"
	"reflect"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/fwojciec/toolrun"
)

// FailurePrefix starts every error response built from a failed call.
const FailurePrefix = "Tool execution failed"

// Invoke executes one function call against the session and classifies the
// outcome into a response part. It never returns an error: transport
// failures and empty results become error responses so the loop continues.
// Only the first content item of a result is kept.
func Invoke(ctx context.Context, session toolrun.ToolSession, call toolrun.FunctionCallPart) toolrun.FunctionResponsePart {
	result, err := session.CallTool(ctx, call.Name, call.Args)
	if err == nil && (result == nil || len(result.Content) == 0) {
		err = errors.Wrapf(toolrun.ErrEmptyToolResult, "%s", call.Name)
	}
	if err != nil {
		kind := ErrorKind(err)
		logger.ContextKV(ctx, xlog.ERROR,
			"event", "tool_error",
			"tool", call.Name,
			"kind", kind,
			"err", err.Error())
		return toolrun.ErrorResponse(call, FailurePrefix+": "+kind+": "+err.Error())
	}

	text := result.Content[0].Text
	if result.IsError {
		logger.ContextKV(ctx, xlog.DEBUG,
			"event", "tool_reported_error",
			"tool", call.Name)
		return toolrun.ErrorResponse(call, text)
	}
	logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_end",
		"tool", call.Name,
		"items", len(result.Content))
	return toolrun.ResultResponse(call, text)
}

// ErrorKind names the category of a tool call failure.
//
// Context and connection failures map to fixed names. Other errors are named
// after the concrete type of the innermost cause, or "Error" when that type
// is unexported.
func ErrorKind(err error) string {
	var netErr net.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "DeadlineExceeded"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, toolrun.ErrConnectionClosed):
		return "ConnectionClosed"
	case errors.Is(err, toolrun.ErrEmptyToolResult):
		return "EmptyToolResult"
	case errors.Is(err, toolrun.ErrProtocol):
		return "JSONRPCError"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "Timeout"
	}
	return typeName(errors.UnwrapAll(err))
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" || !unicode.IsUpper([]rune(name)[0]) {
		return "Error"
	}
	return name
}
