package toolrun

import (
	"encoding/json"
	"fmt"
)

// Event is a sealed interface representing a human-readable progress notice.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventToolCall announces a tool call about to run.
type EventToolCall struct {
	Name string
	Args map[string]any
}

func (EventToolCall) event() {}

// Notice returns the human-readable announcement of the call.
func (e EventToolCall) Notice() string {
	return fmt.Sprintf("Calling MCP tool: `%s` with args: %s", e.Name, FormatArgs(e.Args))
}

// FormatArgs renders call arguments as compact JSON with sorted keys.
// Nil arguments render as {}.
func FormatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	b, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return string(b)
}

// EventToolResult reports the outcome of a tool call.
type EventToolResult struct {
	Name    string
	Content string
	IsError bool
}

func (EventToolResult) event() {}

// EventWarning reports a non-fatal condition such as an exhausted turn budget.
type EventWarning struct {
	Message string
}

func (EventWarning) event() {}

// EventAnswer carries the final answer of a run. It is always the last event.
type EventAnswer struct {
	Text string
}

func (EventAnswer) event() {}

// Notifier receives progress events. Implementations are called from the
// goroutine running the loop.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) { f(e) }

// Interface compliance checks.
var (
	_ Event = EventToolCall{}
	_ Event = EventToolResult{}
	_ Event = EventWarning{}
	_ Event = EventAnswer{}

	_ Notifier = NotifierFunc(nil)
)
