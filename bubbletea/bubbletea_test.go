package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/toolrun"
	bt "github.com/fwojciec/toolrun/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, run bt.AgentFunc, opts ...bt.Option) bt.Model {
	t.Helper()
	return initModelWithSize(t, run, 80, 24, opts...)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, run bt.AgentFunc, width, height int, opts ...bt.Option) bt.Model {
	t.Helper()
	m := bt.New(run, toolrun.DefaultTheme(), opts...)
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// sendEvents delivers events to the model as if they came from a run.
func sendEvents(t *testing.T, m bt.Model, events ...toolrun.Event) bt.Model {
	t.Helper()
	for _, e := range events {
		m = updateModel(t, m, bt.EventMsg{Event: e})
	}
	return m
}

// nopAgent is a mock agent that does nothing.
func nopAgent(_ context.Context, _ string, _ toolrun.Notifier) (string, error) {
	return "", nil
}
