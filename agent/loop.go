// Package agent runs the tool orchestration loop between a ModelClient and a
// ToolSession.
package agent

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/fwojciec/toolrun"
)

var logger = xlog.NewPackageLogger("github.com/fwojciec/toolrun", "agent")

// Loop defaults.
const (
	DefaultMaxToolTurns = 5
	FirstTemperature    = 0.0
	FollowUpTemperature = 1.0
)

// ExhaustedMessage is the warning sent when the turn budget runs out while
// the model still requests tools.
const ExhaustedMessage = "Reached maximum tool turns. Stopping."

// Loop orchestrates the conversation between a ModelClient and a ToolSession.
// A Loop holds only immutable configuration; concurrent Runs must use
// separate sessions.
type Loop struct {
	model        toolrun.ModelClient
	modelID      string
	maxToolTurns int
	notifier     toolrun.Notifier
	toolPatterns []string
}

// Option configures a Loop.
type Option func(*Loop)

// WithMaxToolTurns sets the maximum number of tool rounds. Values below 1
// mean the model never gets tool results back.
func WithMaxToolTurns(n int) Option {
	return func(l *Loop) {
		l.maxToolTurns = n
	}
}

// WithNotifier sets the sink for progress events. If nil or not set, events
// are silently discarded.
func WithNotifier(n toolrun.Notifier) Option {
	return func(l *Loop) {
		l.notifier = n
	}
}

// WithModel sets the model ID for completion requests.
// Empty string means the client uses its default model.
func WithModel(model string) Option {
	return func(l *Loop) {
		l.modelID = model
	}
}

// WithToolFilter narrows the catalog to tools matching any of the glob
// patterns. No patterns keeps every tool.
func WithToolFilter(patterns ...string) Option {
	return func(l *Loop) {
		l.toolPatterns = patterns
	}
}

// New creates a new Loop with the given model client.
func New(model toolrun.ModelClient, opts ...Option) *Loop {
	l := &Loop{
		model:        model,
		maxToolTurns: DefaultMaxToolTurns,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is the outcome of one Run.
type Result struct {
	// Completion is the last model response.
	Completion toolrun.Completion
	// Transcript holds every turn of the run in order.
	Transcript []toolrun.Turn
	// ToolTurns is the number of tool rounds executed.
	ToolTurns int
	// Exhausted is true when the run stopped with tool calls still pending.
	Exhausted bool
}

// Text returns the final answer, possibly empty.
func (r *Result) Text() string {
	return r.Completion.Text()
}

// Run executes the loop for one prompt against a live session. It discovers
// the catalog, requests a completion, executes every requested call and
// repeats until the model stops requesting tools or the turn budget is spent.
// Tool failures are reported back to the model; catalog and model failures
// end the run.
func (l *Loop) Run(ctx context.Context, session toolrun.ToolSession, prompt string) (*Result, error) {
	var tr toolrun.Transcript
	if err := tr.Append(toolrun.UserText(prompt)); err != nil {
		return nil, err
	}

	catalog, err := l.catalog(ctx, session)
	if err != nil {
		return nil, err
	}
	logger.ContextKV(ctx, xlog.DEBUG,
		"event", "run_start",
		"tools", catalog.Len(),
		"max_tool_turns", l.maxToolTurns)

	completion, err := l.complete(ctx, &tr, catalog, FirstTemperature)
	if err != nil {
		return nil, err
	}

	turns := 0
	for completion.HasFunctionCalls() && turns < l.maxToolTurns {
		turns++
		responses := make([]toolrun.Part, 0, len(completion.FunctionCalls()))
		for _, call := range completion.FunctionCalls() {
			l.notify(toolrun.EventToolCall{Name: call.Name, Args: call.Args})
			resp := Invoke(ctx, session, call)
			l.notify(toolrun.EventToolResult{Name: call.Name, Content: resp.Payload(), IsError: resp.IsError()})
			responses = append(responses, resp)
		}
		if err := tr.Append(toolrun.Turn{Role: toolrun.RoleUser, Parts: responses}); err != nil {
			return nil, err
		}
		logger.ContextKV(ctx, xlog.DEBUG,
			"event", "tool_turn",
			"turn", turns,
			"calls", len(responses))

		completion, err = l.complete(ctx, &tr, catalog, FollowUpTemperature)
		if err != nil {
			return nil, err
		}
	}

	exhausted := completion.HasFunctionCalls()
	if exhausted {
		logger.ContextKV(ctx, xlog.WARNING,
			"event", "turns_exhausted",
			"turns", turns,
			"pending", len(completion.FunctionCalls()))
		l.notify(toolrun.EventWarning{Message: ExhaustedMessage})
	}
	logger.ContextKV(ctx, xlog.DEBUG,
		"event", "run_end",
		"tool_turns", turns,
		"exhausted", exhausted)

	return &Result{
		Completion: completion,
		Transcript: tr.Turns(),
		ToolTurns:  turns,
		Exhausted:  exhausted,
	}, nil
}

func (l *Loop) catalog(ctx context.Context, session toolrun.ToolSession) (toolrun.ToolCatalog, error) {
	descs, err := session.ListTools(ctx)
	if err != nil {
		return toolrun.ToolCatalog{}, errors.Wrap(err, "agent: list tools")
	}
	catalog, err := toolrun.NewCatalog(descs)
	if err != nil {
		return toolrun.ToolCatalog{}, errors.Wrap(err, "agent: build catalog")
	}
	catalog, err = catalog.Filter(l.toolPatterns)
	if err != nil {
		return toolrun.ToolCatalog{}, errors.Wrap(err, "agent: filter catalog")
	}
	return catalog, nil
}

// complete requests the next completion and appends the returned turn.
func (l *Loop) complete(ctx context.Context, tr *toolrun.Transcript, catalog toolrun.ToolCatalog, temperature float64) (toolrun.Completion, error) {
	if err := ctx.Err(); err != nil {
		return toolrun.Completion{}, err
	}
	req := toolrun.Request{
		Model:       l.modelID,
		Transcript:  tr.Turns(),
		Catalog:     catalog,
		Temperature: toolrun.Float64(temperature),
	}
	completion, err := l.model.Complete(ctx, req)
	if err != nil {
		return toolrun.Completion{}, errors.Wrap(err, "agent: complete")
	}
	completion.Turn.Role = toolrun.RoleModel
	if err := tr.Append(completion.Turn); err != nil {
		return toolrun.Completion{}, errors.Wrap(err, "agent: append completion")
	}
	return completion, nil
}

func (l *Loop) notify(e toolrun.Event) {
	if l.notifier != nil {
		l.notifier.Notify(e)
	}
}
