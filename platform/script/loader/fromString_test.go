package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-rulescript/internal/helpers"
)

func TestNewFromString(t *testing.T) {
	t.Parallel()

	t.Run("valid content", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			want    string
		}{
			{"simple", simpleRule, simpleRule},
			{"multiline", multilineRule, multilineRule},
			{"trimmed", "  \n" + simpleRule + "\n\t", simpleRule},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				l, err := NewFromString(tt.content)
				require.NoError(t, err)
				assert.Equal(t, tt.want, readAll(t, l))
				requireScheme(t, l, "string")
				assert.Equal(t, "/"+helpers.SHA256(tt.want)[:8], l.GetSourceURL().Path)
			})
		}
	})

	t.Run("empty content", func(t *testing.T) {
		for _, input := range []string{"", "   ", "\n\t"} {
			l, err := NewFromString(input)
			require.ErrorIs(t, err, ErrScriptNotAvailable)
			assert.Nil(t, l)
		}
	})

	t.Run("readers are independent", func(t *testing.T) {
		l, err := NewFromString(simpleRule)
		require.NoError(t, err)
		assert.Equal(t, readAll(t, l), readAll(t, l))
	})

	t.Run("string", func(t *testing.T) {
		l, err := NewFromString("abc")
		require.NoError(t, err)
		assert.Equal(t, "loader.FromString{Chars: 3}", l.String())
	})
}

func TestNewFromBytes(t *testing.T) {
	t.Parallel()

	t.Run("valid content", func(t *testing.T) {
		l, err := NewFromBytes([]byte(simpleRule))
		require.NoError(t, err)
		assert.Equal(t, simpleRule, readAll(t, l))
		requireScheme(t, l, "bytes")
		assert.Equal(t, "/"+helpers.SHA256(simpleRule)[:8], l.GetSourceURL().Path)
		assert.Equal(t, "loader.FromBytes{Bytes: 14}", l.String())
	})

	t.Run("content is kept as is", func(t *testing.T) {
		l, err := NewFromBytes([]byte("  a  "))
		require.NoError(t, err)
		assert.Equal(t, "  a  ", readAll(t, l))
	})

	t.Run("empty content", func(t *testing.T) {
		for _, input := range [][]byte{nil, {}, []byte(" \n")} {
			_, err := NewFromBytes(input)
			require.ErrorIs(t, err, ErrScriptNotAvailable)
		}
	})
}
