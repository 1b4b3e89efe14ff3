// Package anthropic implements [toolrun.ModelClient] for the Anthropic
// Messages API.
//
// It wraps github.com/anthropics/anthropic-sdk-go. Function calls map to
// tool_use blocks and function responses to tool_result blocks, correlated
// by call ID.
package anthropic

const (
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 4096

	// emptyTurnText stands in for a turn with no content, which the API
	// rejects.
	emptyTurnText = "(empty)"
)
