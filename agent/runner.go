package agent

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/fwojciec/toolrun"
)

// Runner owns the session lifecycle for one prompt at a time: it connects,
// runs the loop, releases the session and reports the answer.
type Runner struct {
	provider toolrun.ToolProvider
	loop     *Loop
	notifier toolrun.Notifier
}

// NewRunner creates a Runner. The notifier receives the final answer; pass
// the same notifier to the loop with WithNotifier to see tool progress.
func NewRunner(provider toolrun.ToolProvider, loop *Loop, notifier toolrun.Notifier) *Runner {
	return &Runner{provider: provider, loop: loop, notifier: notifier}
}

// Run processes one prompt to completion and returns the final answer, which
// is empty when the turn budget ran out before the model produced text.
func (r *Runner) Run(ctx context.Context, prompt string) (string, error) {
	res, err := r.RunResult(ctx, prompt)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}

// RunResult is like Run but returns the full Result. The session is closed
// on every exit path; a close failure is logged and does not fail the run.
func (r *Runner) RunResult(ctx context.Context, prompt string) (*Result, error) {
	session, err := r.provider.Connect(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "agent: connect")
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.ContextKV(ctx, xlog.WARNING,
				"event", "session_close",
				"err", err.Error())
		}
	}()

	res, err := r.loop.Run(ctx, session, prompt)
	if err != nil {
		return nil, err
	}
	if r.notifier != nil {
		r.notifier.Notify(toolrun.EventAnswer{Text: res.Text()})
	}
	return res, nil
}
