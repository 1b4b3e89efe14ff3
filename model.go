package toolrun

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ModelClient is a strategy pattern interface for completion services.
type ModelClient interface {
	Complete(ctx context.Context, req Request) (Completion, error)
}

// Request carries the transcript so far, the tool catalog and generation
// parameters. The client uses its own defaults when fields are zero/nil.
type Request struct {
	Model       string // model ID, provider-specific; empty = client default
	Transcript  []Turn
	Catalog     ToolCatalog
	Temperature *float64 // nil = client default
}

// Validate checks universal constraints on Request.
// Client implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if r.Temperature != nil {
		if *r.Temperature < 0 || *r.Temperature > 2 {
			return errors.Wrapf(ErrValidation, "temperature must be in [0, 2], got %g", *r.Temperature)
		}
	}
	if len(r.Transcript) == 0 {
		return errors.Wrap(ErrValidation, "transcript is empty")
	}
	for i, t := range r.Transcript {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "turn %d", i)
		}
	}
	return nil
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
