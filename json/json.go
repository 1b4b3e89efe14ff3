// Package json exports run transcripts as JSON for inspection. Exports are
// write-only; nothing reads them back.
package json

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fwojciec/toolrun"
)

// Record describes one finished run.
type Record struct {
	Provider  string
	Model     string
	CreatedAt time.Time
	ToolTurns int
	Exhausted bool
	Turns     []toolrun.Turn
}

// envelope is the v1 wire format for an exported transcript.
type envelope struct {
	Version   int       `json:"version"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ToolTurns int       `json:"tool_turns"`
	Exhausted bool      `json:"exhausted"`
	Answer    string    `json:"answer"`
	Turns     []turnDTO `json:"turns"`
}

type turnDTO struct {
	Role  string    `json:"role"`
	Parts []partDTO `json:"parts"`
}

// partDTO is the JSON representation of a Part with a type discriminator.
type partDTO struct {
	Type      string         `json:"type"`
	Text      *string        `json:"text,omitempty"`
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
	Response  map[string]any `json:"response,omitempty"`
	Signature []byte         `json:"signature,omitempty"`
}

// Part type discriminators.
const (
	partText             = "text"
	partThought          = "thought"
	partFunctionCall     = "function_call"
	partFunctionResponse = "function_response"
)

// MarshalTranscript serializes a Record in v1 envelope format. The answer
// is the text of the last model turn when the run ended on one.
func MarshalTranscript(r Record) ([]byte, error) {
	env := envelope{
		Version:   1,
		Provider:  r.Provider,
		Model:     r.Model,
		CreatedAt: r.CreatedAt,
		ToolTurns: r.ToolTurns,
		Exhausted: r.Exhausted,
		Turns:     make([]turnDTO, len(r.Turns)),
	}
	for i, t := range r.Turns {
		dto, err := marshalTurn(t)
		if err != nil {
			return nil, errors.Wrapf(err, "turn %d", i)
		}
		env.Turns[i] = dto
	}
	if n := len(r.Turns); n > 0 && r.Turns[n-1].Role == toolrun.RoleModel {
		env.Answer = r.Turns[n-1].Text()
	}
	return json.MarshalIndent(env, "", "  ")
}

// Save writes a Record to a JSON file, creating parent directories as
// needed. The file is replaced atomically.
func Save(path string, r Record) error {
	data, err := MarshalTranscript(r)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "create directories")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}

func marshalTurn(t toolrun.Turn) (turnDTO, error) {
	dto := turnDTO{Role: string(t.Role), Parts: make([]partDTO, len(t.Parts))}
	for i, p := range t.Parts {
		switch p := p.(type) {
		case toolrun.TextPart:
			dto.Parts[i] = partDTO{Type: partText, Text: &p.Text, Signature: p.Signature}
		case toolrun.ThoughtPart:
			dto.Parts[i] = partDTO{Type: partThought, Text: &p.Text, Signature: p.Signature}
		case toolrun.FunctionCallPart:
			dto.Parts[i] = partDTO{Type: partFunctionCall, ID: p.ID, Name: p.Name, Args: p.Args, Signature: p.Signature}
		case toolrun.FunctionResponsePart:
			dto.Parts[i] = partDTO{Type: partFunctionResponse, ID: p.ID, Name: p.Name, Response: p.Response}
		default:
			return turnDTO{}, errors.Newf("unknown part type %T", p)
		}
	}
	return dto, nil
}
