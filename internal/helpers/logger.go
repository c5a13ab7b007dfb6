package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger returns a handler and a logger grouped for one rules component.
// A nil handler is replaced by a text handler on stdout, grouped under engineName,
// and a warning is written so the missing configuration is visible.
func SetupLogger(handler slog.Handler, engineName string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, nil).WithGroup(engineName)
		slog.New(handler).Warn("Handler is nil, using the default logger configuration.")
	}

	if groupName == "" {
		return handler, slog.New(handler)
	}
	return handler, slog.New(handler.WithGroup(groupName))
}
