package gemini

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/fwojciec/toolrun"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ toolrun.ModelClient = (*Client)(nil)

// Client implements [toolrun.ModelClient] for the Google Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	baseURL string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-2.0-flash.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	c := &Client{model: defaultModel}
	for _, o := range opts {
		o(c)
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "gemini")
	}
	c.client = gc
	return c, nil
}

// Complete sends the transcript and catalog to the Gemini API and returns
// the first candidate's turn.
func (c *Client) Complete(ctx context.Context, req toolrun.Request) (toolrun.Completion, error) {
	if err := req.Validate(); err != nil {
		return toolrun.Completion{}, errors.Wrap(err, "gemini")
	}
	model := req.Model
	if model == "" {
		model = c.model
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, ConvertTranscript(req.Transcript), buildConfig(req))
	if err != nil {
		return toolrun.Completion{}, errors.Wrap(err, "gemini")
	}
	return convertResponse(resp)
}

func buildConfig(req toolrun.Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	// The API rejects a tool object without declarations.
	if req.Catalog.Len() > 0 {
		config.Tools = []*genai.Tool{ConvertCatalog(req.Catalog)}
	}
	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}
	return config
}

// ConvertTranscript converts transcript turns to genai Contents.
// Exported for testing.
func ConvertTranscript(turns []toolrun.Turn) []*genai.Content {
	result := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		result = append(result, &genai.Content{
			Role:  string(t.Role),
			Parts: convertParts(t.Parts),
		})
	}
	return result
}

func convertParts(parts []toolrun.Part) []*genai.Part {
	var out []*genai.Part
	for _, p := range parts {
		switch pt := p.(type) {
		case toolrun.TextPart:
			out = append(out, &genai.Part{Text: pt.Text, ThoughtSignature: pt.Signature})
		case toolrun.ThoughtPart:
			out = append(out, &genai.Part{Text: pt.Text, Thought: true, ThoughtSignature: pt.Signature})
		case toolrun.FunctionCallPart:
			out = append(out, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   pt.ID,
					Name: pt.Name,
					Args: pt.Args,
				},
				ThoughtSignature: pt.Signature,
			})
		case toolrun.FunctionResponsePart:
			out = append(out, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       pt.ID,
					Name:     pt.Name,
					Response: pt.Response,
				},
			})
		}
	}
	return out
}

// ConvertCatalog converts a catalog to a single genai Tool holding one
// function declaration per descriptor. An empty catalog yields a Tool with
// no declarations.
// Exported for testing.
func ConvertCatalog(catalog toolrun.ToolCatalog) *genai.Tool {
	tools := catalog.Tools()
	decls := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		decl := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if len(t.InputSchema) > 0 {
			decl.ParametersJsonSchema = t.InputSchema
		}
		decls[i] = decl
	}
	return &genai.Tool{FunctionDeclarations: decls}
}

// convertResponse keeps thoughts and thought signatures so the turn can be
// sent back as received.
func convertResponse(resp *genai.GenerateContentResponse) (toolrun.Completion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return toolrun.Completion{}, errors.Wrap(toolrun.ErrNoCandidates, "gemini")
	}
	turn := toolrun.Turn{Role: toolrun.RoleModel}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil {
			continue
		}
		switch {
		case p.FunctionCall != nil:
			args := p.FunctionCall.Args
			if args == nil {
				args = map[string]any{}
			}
			turn.Parts = append(turn.Parts, toolrun.FunctionCallPart{
				ID:        p.FunctionCall.ID,
				Name:      p.FunctionCall.Name,
				Args:      args,
				Signature: p.ThoughtSignature,
			})
		case p.Thought:
			turn.Parts = append(turn.Parts, toolrun.ThoughtPart{Text: p.Text, Signature: p.ThoughtSignature})
		case p.Text != "" || len(p.ThoughtSignature) > 0:
			turn.Parts = append(turn.Parts, toolrun.TextPart{Text: p.Text, Signature: p.ThoughtSignature})
		}
	}
	return toolrun.Completion{Turn: turn}, nil
}
