package toolrun

// Completion is one model response: either terminal text, a set of
// requested function calls, or both.
type Completion struct {
	Turn Turn
}

// Text returns the completion's text, empty when the model only requested calls.
func (c Completion) Text() string {
	return c.Turn.Text()
}

// FunctionCalls returns the requested calls in model order.
func (c Completion) FunctionCalls() []FunctionCallPart {
	return c.Turn.FunctionCalls()
}

// HasFunctionCalls reports whether the model requested at least one call.
func (c Completion) HasFunctionCalls() bool {
	for _, p := range c.Turn.Parts {
		if _, ok := p.(FunctionCallPart); ok {
			return true
		}
	}
	return false
}
