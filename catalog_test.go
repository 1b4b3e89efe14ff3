package toolrun_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/toolrun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()
		c, err := toolrun.NewCatalog([]toolrun.ToolDescriptor{
			{Name: "airbnb_search", InputSchema: json.RawMessage(`{"type":"object"}`)},
			{Name: "airbnb_listing_details"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []string{"airbnb_search", "airbnb_listing_details"}, c.Names())
		assert.JSONEq(t, `{"type":"object"}`, string(c.Tools()[0].InputSchema))
	})

	t.Run("empty is valid", func(t *testing.T) {
		t.Parallel()
		c, err := toolrun.NewCatalog(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Names())
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := toolrun.NewCatalog([]toolrun.ToolDescriptor{{Name: "a"}, {Name: "a"}})
		assert.ErrorIs(t, err, toolrun.ErrDuplicateTool)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := toolrun.NewCatalog([]toolrun.ToolDescriptor{{Name: ""}})
		assert.ErrorIs(t, err, toolrun.ErrValidation)
	})
}

func TestToolCatalog_Filter(t *testing.T) {
	t.Parallel()
	c, err := toolrun.NewCatalog([]toolrun.ToolDescriptor{
		{Name: "airbnb_search"},
		{Name: "airbnb_listing_details"},
		{Name: "weather"},
	})
	require.NoError(t, err)

	t.Run("no patterns keeps all", func(t *testing.T) {
		t.Parallel()
		got, err := c.Filter(nil)
		require.NoError(t, err)
		assert.Equal(t, c.Names(), got.Names())
	})

	t.Run("glob narrows catalog", func(t *testing.T) {
		t.Parallel()
		got, err := c.Filter([]string{"airbnb_*"})
		require.NoError(t, err)
		assert.Equal(t, []string{"airbnb_search", "airbnb_listing_details"}, got.Names())
	})

	t.Run("any matching pattern keeps tool once", func(t *testing.T) {
		t.Parallel()
		got, err := c.Filter([]string{"weather", "w*"})
		require.NoError(t, err)
		assert.Equal(t, []string{"weather"}, got.Names())
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := c.Filter([]string{"[unclosed"})
		assert.ErrorIs(t, err, toolrun.ErrValidation)
	})
}
