// Package mock provides test doubles for toolrun interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/toolrun"
)

// Interface compliance checks.
var (
	_ toolrun.ModelClient = (*ModelClient)(nil)
	_ toolrun.Notifier    = (*Notifier)(nil)
)

// ModelClient is a test double for toolrun.ModelClient.
// Set CompleteFn before calling Complete.
type ModelClient struct {
	CompleteFn func(ctx context.Context, req toolrun.Request) (toolrun.Completion, error)
}

// Complete delegates to CompleteFn.
func (m *ModelClient) Complete(ctx context.Context, req toolrun.Request) (toolrun.Completion, error) {
	return m.CompleteFn(ctx, req)
}

// Notifier is a test double for toolrun.Notifier.
// Set NotifyFn before calling Notify.
type Notifier struct {
	NotifyFn func(e toolrun.Event)
}

// Notify delegates to NotifyFn.
func (n *Notifier) Notify(e toolrun.Event) {
	n.NotifyFn(e)
}
