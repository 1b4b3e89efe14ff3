package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/fwojciec/toolrun"
	"github.com/fwojciec/toolrun/anthropic"
	"github.com/fwojciec/toolrun/gemini"
)

// newModelClient constructs the client for the resolved provider.
func newModelClient(ctx context.Context, cfg providerConfig) (toolrun.ModelClient, error) {
	switch cfg.name {
	case providerAnthropic:
		return anthropic.New(cfg.key), nil
	case providerGemini:
		client, err := gemini.New(ctx, cfg.key)
		if err != nil {
			return nil, errors.Wrap(err, "gemini")
		}
		return client, nil
	default:
		return nil, errors.Newf("unknown provider %q", cfg.name)
	}
}
