package toolrun_test

import (
	"testing"

	"github.com/fwojciec/toolrun"
	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()
	transcript := []toolrun.Turn{toolrun.UserText("hi")}

	t.Run("nil temperature is valid", func(t *testing.T) {
		t.Parallel()
		r := toolrun.Request{Transcript: transcript}
		assert.NoError(t, r.Validate())
	})

	t.Run("temperature 0 is valid", func(t *testing.T) {
		t.Parallel()
		r := toolrun.Request{Transcript: transcript, Temperature: toolrun.Float64(0)}
		assert.NoError(t, r.Validate())
	})

	t.Run("temperature 1.0 is valid", func(t *testing.T) {
		t.Parallel()
		r := toolrun.Request{Transcript: transcript, Temperature: toolrun.Float64(1.0)}
		assert.NoError(t, r.Validate())
	})

	t.Run("negative temperature", func(t *testing.T) {
		t.Parallel()
		r := toolrun.Request{Transcript: transcript, Temperature: toolrun.Float64(-0.1)}
		assert.ErrorIs(t, r.Validate(), toolrun.ErrValidation)
	})

	t.Run("temperature above 2", func(t *testing.T) {
		t.Parallel()
		r := toolrun.Request{Transcript: transcript, Temperature: toolrun.Float64(2.5)}
		assert.ErrorIs(t, r.Validate(), toolrun.ErrValidation)
	})

	t.Run("empty transcript", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, toolrun.Request{}.Validate(), toolrun.ErrValidation)
	})

	t.Run("invalid turn", func(t *testing.T) {
		t.Parallel()
		r := toolrun.Request{Transcript: []toolrun.Turn{{Role: "system"}}}
		assert.ErrorIs(t, r.Validate(), toolrun.ErrValidation)
	})
}
