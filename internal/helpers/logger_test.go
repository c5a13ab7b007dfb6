package helpers

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("nil handler gets a default", func(t *testing.T) {
		handler, logger := SetupLogger(nil, "rules", "Test")
		require.NotNil(t, handler)
		require.NotNil(t, logger)
	})

	t.Run("group is applied", func(t *testing.T) {
		var buf bytes.Buffer
		h := slog.NewTextHandler(&buf, nil)
		handler, logger := SetupLogger(h, "rules", "Interpreter")
		assert.Equal(t, h, handler)

		logger.Info("hello", "key", "value")
		assert.Contains(t, buf.String(), "Interpreter.key=value")
	})

	t.Run("empty group", func(t *testing.T) {
		var buf bytes.Buffer
		_, logger := SetupLogger(slog.NewTextHandler(&buf, nil), "rules", "")
		logger.Info("hello", "key", "value")
		assert.Contains(t, buf.String(), " key=value")
	})
}
