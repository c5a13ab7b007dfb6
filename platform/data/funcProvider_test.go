package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncProvider(t *testing.T) {
	t.Parallel()

	t.Run("calls the function each time", func(t *testing.T) {
		calls := 0
		p := NewFuncProvider("counter", func(context.Context) (map[string]any, error) {
			calls++
			return map[string]any{"calls": calls}, nil
		})

		first, err := p.GetData(t.Context())
		require.NoError(t, err)
		second, err := p.GetData(t.Context())
		require.NoError(t, err)

		assert.Equal(t, 1, first["calls"])
		assert.Equal(t, 2, second["calls"])
		assert.Equal(t, "data.FuncProvider{Name: counter}", p.String())
	})

	t.Run("wraps errors", func(t *testing.T) {
		p := NewFuncProvider("broken", func(context.Context) (map[string]any, error) {
			return nil, assert.AnError
		})
		_, err := p.GetData(t.Context())
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("nil results", func(t *testing.T) {
		got, err := NewFuncProvider("nil fn", nil).GetData(t.Context())
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = NewFuncProvider("nil map", func(context.Context) (map[string]any, error) {
			return nil, nil
		}).GetData(t.Context())
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("rejects runtime data", func(t *testing.T) {
		_, err := NewFuncProvider("f", nil).AddDataToContext(t.Context(), simpleData)
		require.ErrorIs(t, err, ErrStaticProviderNoRuntimeUpdates)
	})
}
