package toolrun

// Part is a sealed interface representing one piece of a turn.
// The unexported marker method prevents external implementations.
type Part interface {
	part()
}

// TextPart contains text content. Signature is an opaque provider token
// that must be sent back unchanged with the turn.
type TextPart struct {
	Text      string
	Signature []byte
}

func (TextPart) part() {}

// ThoughtPart is model reasoning returned with a model turn. It is not part
// of the answer text.
type ThoughtPart struct {
	Text      string
	Signature []byte
}

func (ThoughtPart) part() {}

// FunctionCallPart is a model request to invoke a named tool.
// ID is the provider's call identifier, empty when the provider does not
// assign one. Signature is the provider's reasoning token for the call.
type FunctionCallPart struct {
	ID        string
	Name      string
	Args      map[string]any
	Signature []byte
}

func (FunctionCallPart) part() {}

// FunctionResponsePart carries the outcome of one tool call back to the model.
// Response holds exactly one of the keys "result" or "error".
type FunctionResponsePart struct {
	ID       string
	Name     string
	Response map[string]any
}

func (FunctionResponsePart) part() {}

// Response map keys.
const (
	ResponseKeyResult = "result"
	ResponseKeyError  = "error"
)

// ResultResponse builds a successful response for the call.
func ResultResponse(call FunctionCallPart, payload string) FunctionResponsePart {
	return FunctionResponsePart{
		ID:       call.ID,
		Name:     call.Name,
		Response: map[string]any{ResponseKeyResult: payload},
	}
}

// ErrorResponse builds a failed response for the call.
func ErrorResponse(call FunctionCallPart, msg string) FunctionResponsePart {
	return FunctionResponsePart{
		ID:       call.ID,
		Name:     call.Name,
		Response: map[string]any{ResponseKeyError: msg},
	}
}

// IsError reports whether the response carries an error.
func (p FunctionResponsePart) IsError() bool {
	_, ok := p.Response[ResponseKeyError]
	return ok
}

// Payload returns the result or error text.
func (p FunctionResponsePart) Payload() string {
	key := ResponseKeyResult
	if p.IsError() {
		key = ResponseKeyError
	}
	s, _ := p.Response[key].(string)
	return s
}

// Interface compliance checks.
var (
	_ Part = TextPart{}
	_ Part = ThoughtPart{}
	_ Part = FunctionCallPart{}
	_ Part = FunctionResponsePart{}
)
