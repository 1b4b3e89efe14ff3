package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"
	"github.com/fwojciec/toolrun"
)

// Interface compliance check.
var _ toolrun.ModelClient = (*Client)(nil)

// Client implements [toolrun.ModelClient] for the Anthropic Messages API.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

type config struct {
	model     string
	maxTokens int64
	opts      []option.RequestOption
}

// Option configures a [Client].
type Option func(*config)

// WithModel sets the model ID. Default is claude-sonnet-4-5.
func WithModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithMaxTokens sets the completion token limit. Default is 4096.
func WithMaxTokens(n int64) Option {
	return func(c *config) { c.maxTokens = n }
}

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *config) { c.opts = append(c.opts, option.WithBaseURL(url)) }
}

// WithMaxRetries sets how many times the SDK retries failed requests.
func WithMaxRetries(n int) Option {
	return func(c *config) { c.opts = append(c.opts, option.WithMaxRetries(n)) }
}

// New creates a new Anthropic [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	cfg := config{model: defaultModel, maxTokens: defaultMaxTokens}
	for _, o := range opts {
		o(&cfg)
	}
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, cfg.opts...)
	return &Client{
		client:    anthropic.NewClient(reqOpts...),
		model:     cfg.model,
		maxTokens: cfg.maxTokens,
	}
}

// Complete sends the transcript and catalog to the Messages API and returns
// the assistant turn.
func (c *Client) Complete(ctx context.Context, req toolrun.Request) (toolrun.Completion, error) {
	if err := req.Validate(); err != nil {
		return toolrun.Completion{}, errors.Wrap(err, "anthropic")
	}
	model := req.Model
	if model == "" {
		model = c.model
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		Messages:  ConvertTranscript(req.Transcript),
	}
	tools, err := ConvertCatalog(req.Catalog)
	if err != nil {
		return toolrun.Completion{}, err
	}
	if len(tools) > 0 {
		params.Tools = tools
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return toolrun.Completion{}, errors.Wrap(err, "anthropic")
	}
	return convertMessage(msg)
}

// ConvertTranscript converts transcript turns to Anthropic message params.
// Calls without an ID get a positional one, and responses without an ID
// take the ID of the call at the same position in the preceding model turn.
// Thoughts are not sent. A turn with no content gets a placeholder text block.
// Exported for testing.
func ConvertTranscript(turns []toolrun.Turn) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(turns))
	var pending []string
	for ti, t := range turns {
		var blocks []anthropic.ContentBlockParamUnion
		var calls []string
		responses := 0
		for _, p := range t.Parts {
			switch pt := p.(type) {
			case toolrun.TextPart:
				if pt.Text != "" {
					blocks = append(blocks, anthropic.NewTextBlock(pt.Text))
				}
			case toolrun.FunctionCallPart:
				id := pt.ID
				if id == "" {
					id = fmt.Sprintf("call_%d_%d", ti, len(calls))
				}
				calls = append(calls, id)
				args := pt.Args
				if args == nil {
					args = map[string]any{}
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(id, args, pt.Name))
			case toolrun.FunctionResponsePart:
				id := pt.ID
				if id == "" && responses < len(pending) {
					id = pending[responses]
				}
				responses++
				blocks = append(blocks, anthropic.NewToolResultBlock(id, pt.Payload(), pt.IsError()))
			}
		}
		if len(blocks) == 0 {
			blocks = append(blocks, anthropic.NewTextBlock(emptyTurnText))
		}
		pending = calls
		if t.Role == toolrun.RoleModel {
			msgs = append(msgs, anthropic.NewAssistantMessage(blocks...))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(blocks...))
		}
	}
	return msgs
}

// ConvertCatalog converts a catalog to Anthropic tool params. Every key of
// a tool's schema is passed through; a missing schema becomes an empty
// object schema.
// Exported for testing.
func ConvertCatalog(catalog toolrun.ToolCatalog) ([]anthropic.ToolUnionParam, error) {
	tools := catalog.Tools()
	if len(tools) == 0 {
		return nil, nil
	}
	out := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		inputSchema, err := convertSchema(t.InputSchema)
		if err != nil {
			return nil, errors.Wrapf(err, "anthropic: decode %s schema", t.Name)
		}
		tool := &anthropic.ToolParam{
			Name:        t.Name,
			InputSchema: inputSchema,
		}
		if t.Description != "" {
			tool.Description = anthropic.String(t.Description)
		}
		out[i] = anthropic.ToolUnionParam{OfTool: tool}
	}
	return out, nil
}

// convertSchema maps a JSON schema object onto the SDK param. Keys the SDK
// does not model are carried in ExtraFields. The type is always object.
func convertSchema(raw json.RawMessage) (anthropic.ToolInputSchemaParam, error) {
	schema := anthropic.ToolInputSchemaParam{Type: "object"}
	if len(raw) == 0 {
		return schema, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return anthropic.ToolInputSchemaParam{}, err
	}
	for key, value := range fields {
		switch key {
		case "type":
		case "properties":
			schema.Properties = value
		case "required":
			required, err := stringList(value)
			if err != nil {
				return anthropic.ToolInputSchemaParam{}, err
			}
			if len(required) > 0 {
				schema.Required = required
			}
		default:
			if schema.ExtraFields == nil {
				schema.ExtraFields = map[string]any{}
			}
			schema.ExtraFields[key] = value
		}
	}
	return schema, nil
}

func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errors.Newf("required: expected array, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Newf("required: expected string, got %T", item)
		}
		out[i] = s
	}
	return out, nil
}

func convertMessage(msg *anthropic.Message) (toolrun.Completion, error) {
	if msg == nil || len(msg.Content) == 0 {
		return toolrun.Completion{}, errors.Wrap(toolrun.ErrNoCandidates, "anthropic")
	}
	turn := toolrun.Turn{Role: toolrun.RoleModel}
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			turn.Parts = append(turn.Parts, toolrun.TextPart{Text: b.Text})
		case anthropic.ToolUseBlock:
			args := map[string]any{}
			if len(b.Input) > 0 {
				if err := json.Unmarshal(b.Input, &args); err != nil {
					return toolrun.Completion{}, errors.Wrapf(err, "anthropic: decode %s input", b.Name)
				}
			}
			turn.Parts = append(turn.Parts, toolrun.FunctionCallPart{
				ID:   b.ID,
				Name: b.Name,
				Args: args,
			})
		}
	}
	return toolrun.Completion{Turn: turn}, nil
}
