// Package bubbletea provides the interactive form for toolrun: a prompt
// editor, a spinner while the agent works, and the run's progress and answer.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/toolrun"
)

// DefaultPrompt pre-fills the prompt editor.
const DefaultPrompt = "I want to book an apartment in Paris for 2 nights. 03/28 - 03/30"

// AgentFunc runs one prompt to completion. Progress events go to notifier,
// including the final EventAnswer. The function blocks until the run ends or
// ctx is cancelled.
type AgentFunc func(ctx context.Context, prompt string, notifier toolrun.Notifier) (string, error)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. Cancelling ctx quits the program.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// EventMsg wraps a progress event for delivery to the model.
type EventMsg struct {
	Event toolrun.Event
}

// AgentDoneMsg signals that a run has finished.
type AgentDoneMsg struct {
	Answer string
	Err    error
}
