package toolrun

import "github.com/cockroachdb/errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request, turn or transcript failed validation.
	ErrValidation = errors.New("validation error")

	// ErrDuplicateTool indicates a tool session advertised the same name twice.
	ErrDuplicateTool = errors.New("duplicate tool name")

	// ErrNoCandidates indicates the model returned no usable turn.
	ErrNoCandidates = errors.New("model returned no candidates")

	// ErrEmptyToolResult indicates a tool call returned no content items.
	ErrEmptyToolResult = errors.New("tool returned no content")

	// ErrNotConnected indicates an operation on a closed or unopened tool session.
	ErrNotConnected = errors.New("tool session not connected")

	// ErrConnectionClosed indicates the tool provider closed the connection
	// before a call completed.
	ErrConnectionClosed = errors.New("tool connection closed")

	// ErrProtocol marks protocol-level errors returned by a tool provider.
	ErrProtocol = errors.New("tool protocol error")
)
