package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/toolrun"
	"github.com/fwojciec/toolrun/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelClient_Complete(t *testing.T) {
	t.Parallel()
	t.Run("delegates to CompleteFn", func(t *testing.T) {
		t.Parallel()
		want := toolrun.Completion{Turn: toolrun.Turn{
			Role:  toolrun.RoleModel,
			Parts: []toolrun.Part{toolrun.TextPart{Text: "hello"}},
		}}
		m := mock.ModelClient{
			CompleteFn: func(ctx context.Context, req toolrun.Request) (toolrun.Completion, error) {
				assert.Equal(t, "gemini-2.0-flash", req.Model)
				return want, nil
			},
		}
		got, err := m.Complete(context.Background(), toolrun.Request{Model: "gemini-2.0-flash"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		m := mock.ModelClient{
			CompleteFn: func(ctx context.Context, req toolrun.Request) (toolrun.Completion, error) {
				return toolrun.Completion{}, wantErr
			},
		}
		_, err := m.Complete(context.Background(), toolrun.Request{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when CompleteFn not set", func(t *testing.T) {
		t.Parallel()
		m := mock.ModelClient{}
		assert.Panics(t, func() {
			_, _ = m.Complete(context.Background(), toolrun.Request{})
		})
	})
}

func TestNotifier_Notify(t *testing.T) {
	t.Parallel()
	var got toolrun.Event
	n := mock.Notifier{NotifyFn: func(e toolrun.Event) { got = e }}
	n.Notify(toolrun.EventAnswer{Text: "done"})
	assert.Equal(t, toolrun.EventAnswer{Text: "done"}, got)
}

func TestToolSession(t *testing.T) {
	t.Parallel()
	t.Run("delegates ListTools", func(t *testing.T) {
		t.Parallel()
		s := mock.ToolSession{
			ListToolsFn: func(ctx context.Context) ([]toolrun.ToolDescriptor, error) {
				return []toolrun.ToolDescriptor{{Name: "airbnb_search"}}, nil
			},
		}
		got, err := s.ListTools(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []toolrun.ToolDescriptor{{Name: "airbnb_search"}}, got)
	})

	t.Run("delegates CallTool", func(t *testing.T) {
		t.Parallel()
		want := &toolrun.ToolResult{Content: []toolrun.ContentItem{{Type: toolrun.ContentText, Text: "ok"}}}
		s := mock.ToolSession{
			CallToolFn: func(ctx context.Context, name string, args map[string]any) (*toolrun.ToolResult, error) {
				assert.Equal(t, "airbnb_search", name)
				assert.Equal(t, map[string]any{"location": "Paris"}, args)
				return want, nil
			},
		}
		got, err := s.CallTool(context.Background(), "airbnb_search", map[string]any{"location": "Paris"})
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("delegates Close", func(t *testing.T) {
		t.Parallel()
		called := false
		s := mock.ToolSession{CloseFn: func() error {
			called = true
			return nil
		}}
		require.NoError(t, s.Close())
		assert.True(t, called)
	})
}

func TestToolProvider_Connect(t *testing.T) {
	t.Parallel()
	t.Run("delegates to ConnectFn", func(t *testing.T) {
		t.Parallel()
		session := &mock.ToolSession{}
		p := mock.ToolProvider{
			ConnectFn: func(ctx context.Context) (toolrun.ToolSession, error) {
				return session, nil
			},
		}
		got, err := p.Connect(context.Background())
		require.NoError(t, err)
		assert.Same(t, session, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("spawn failed")
		p := mock.ToolProvider{
			ConnectFn: func(ctx context.Context) (toolrun.ToolSession, error) {
				return nil, wantErr
			},
		}
		_, err := p.Connect(context.Background())
		assert.ErrorIs(t, err, wantErr)
	})
}
