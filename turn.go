package toolrun

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Turn is one role-tagged group of parts appended atomically to a transcript.
type Turn struct {
	Role  Role
	Parts []Part
}

// UserText returns a user turn holding a single text part.
func UserText(text string) Turn {
	return Turn{Role: RoleUser, Parts: []Part{TextPart{Text: text}}}
}

// Text concatenates the turn's text parts. Thoughts are excluded.
func (t Turn) Text() string {
	var sb strings.Builder
	for _, p := range t.Parts {
		if tp, ok := p.(TextPart); ok {
			sb.WriteString(tp.Text)
		}
	}
	return sb.String()
}

// FunctionCalls returns the turn's function calls in order.
func (t Turn) FunctionCalls() []FunctionCallPart {
	var calls []FunctionCallPart
	for _, p := range t.Parts {
		if fc, ok := p.(FunctionCallPart); ok {
			calls = append(calls, fc)
		}
	}
	return calls
}

// Validate checks that the turn's parts are allowed for its role.
// Model turns carry text, thoughts and function calls; user turns carry
// text and function responses.
func (t Turn) Validate() error {
	for _, p := range t.Parts {
		switch p.(type) {
		case TextPart:
		case ThoughtPart:
			if t.Role != RoleModel {
				return errors.Wrapf(ErrValidation, "thought not allowed in %s turn", t.Role)
			}
		case FunctionCallPart:
			if t.Role != RoleModel {
				return errors.Wrapf(ErrValidation, "function call not allowed in %s turn", t.Role)
			}
		case FunctionResponsePart:
			if t.Role != RoleUser {
				return errors.Wrapf(ErrValidation, "function response not allowed in %s turn", t.Role)
			}
		default:
			return errors.Wrapf(ErrValidation, "unknown part type %T in %s turn", p, t.Role)
		}
	}
	switch t.Role {
	case RoleUser, RoleModel:
		return nil
	default:
		return errors.Wrapf(ErrValidation, "unknown role %q", t.Role)
	}
}

// Transcript is the ordered, append-only record of one run.
// The zero value is an empty transcript ready to use.
type Transcript struct {
	turns []Turn
}

// Append adds a turn. The first turn must be a user turn and roles must
// alternate. The turn's parts are copied so later changes by the caller do
// not reach the transcript.
func (tr *Transcript) Append(t Turn) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(tr.turns) == 0 {
		if t.Role != RoleUser {
			return errors.Wrapf(ErrValidation, "transcript must start with a user turn, got %s", t.Role)
		}
	} else if last := tr.turns[len(tr.turns)-1]; last.Role == t.Role {
		return errors.Wrapf(ErrValidation, "consecutive %s turns", t.Role)
	}
	tr.turns = append(tr.turns, Turn{Role: t.Role, Parts: slices.Clone(t.Parts)})
	return nil
}

// Turns returns a copy of the recorded turns.
func (tr *Transcript) Turns() []Turn {
	return slices.Clone(tr.turns)
}

// Len returns the number of recorded turns.
func (tr *Transcript) Len() int {
	return len(tr.turns)
}

// Last returns the most recent turn and false when the transcript is empty.
func (tr *Transcript) Last() (Turn, bool) {
	if len(tr.turns) == 0 {
		return Turn{}, false
	}
	return tr.turns[len(tr.turns)-1], true
}
