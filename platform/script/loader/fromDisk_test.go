package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCompressed(t *testing.T, path string, content []byte) {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, enc.Close()) }()
	require.NoError(t, os.WriteFile(path, enc.EncodeAll(content, nil), 0o600))
}

func TestNewFromDisk(t *testing.T) {
	t.Parallel()

	t.Run("plain file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "discount.rules")
		require.NoError(t, os.WriteFile(path, []byte(multilineRule), 0o600))

		l, err := NewFromDisk(path)
		require.NoError(t, err)
		assert.Equal(t, multilineRule, readAll(t, l))
		requireScheme(t, l, "file")
		assert.Equal(t, filepath.ToSlash(path), l.GetSourceURL().Path)
		assert.Contains(t, l.String(), "discount.rules")
	})

	t.Run("compressed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "discount.rules.zst")
		writeCompressed(t, path, []byte(multilineRule))

		l, err := NewFromDisk(path)
		require.NoError(t, err)
		assert.Equal(t, multilineRule, readAll(t, l))
	})

	t.Run("corrupt compressed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.zst")
		require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o600))

		l, err := NewFromDisk(path)
		require.NoError(t, err)
		_, err = l.GetReader()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decompress")
	})

	t.Run("reads the file again on every call", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "live.rules")
		require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

		l, err := NewFromDisk(path)
		require.NoError(t, err)
		assert.Equal(t, "a", readAll(t, l))

		require.NoError(t, os.WriteFile(path, []byte("b"), 0o600))
		assert.Equal(t, "b", readAll(t, l))
	})

	t.Run("relative path becomes absolute", func(t *testing.T) {
		l, err := NewFromDisk("testdata/rule.rules")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(l.path))
	})

	t.Run("missing file", func(t *testing.T) {
		l, err := NewFromDisk(filepath.Join(t.TempDir(), "missing.rules"))
		require.NoError(t, err)
		_, err = l.GetReader()
		require.ErrorIs(t, err, ErrScriptNotAvailable)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewFromDisk("  ")
		require.ErrorIs(t, err, ErrInvalidPath)
	})
}
