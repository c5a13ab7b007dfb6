package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferLoader(t *testing.T) {
	t.Parallel()

	existing := filepath.Join(t.TempDir(), "existing")
	require.NoError(t, os.WriteFile(existing, []byte(simpleRule), 0o600))

	tests := []struct {
		name     string
		input    any
		wantType string
		wantErr  error
	}{
		{"http url", "http://example.com/a.rules", "*loader.FromHTTP", nil},
		{"https url", "https://example.com/a.rules", "*loader.FromHTTP", nil},
		{"file url", "file:///etc/rules/a.rules", "*loader.FromDisk", nil},
		{"bolt url", "bolt:///var/lib/rules.db?bucket=rules&key=discount", "*loader.FromBolt", nil},
		{"existing file without extension", existing, "*loader.FromDisk", nil},
		{"rule file path", "rules/discount.rules", "*loader.FromDisk", nil},
		{"compressed rule path", "/srv/discount.rules.zst", "*loader.FromDisk", nil},
		{"member access is source", "ctx.rules", "*loader.FromString", nil},
		{"call is source", simpleRule, "*loader.FromString", nil},
		{"multiline source", multilineRule, "*loader.FromString", nil},
		{"statements", "a; b", "*loader.FromString", nil},
		{"string containing a slash", `path == "a/b.rules"`, "*loader.FromString", nil},
		{"bytes", []byte(simpleRule), "*loader.FromBytes", nil},
		{"empty string", "  ", "", ErrScriptNotAvailable},
		{"unsupported", 42, "", ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := InferLoader(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, fmt.Sprintf("%T", got))
		})
	}

	t.Run("loader passes through", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromString(simpleRule)
		require.NoError(t, err)
		got, err := InferLoader(l)
		require.NoError(t, err)
		assert.Same(t, l, got)
	})
}
