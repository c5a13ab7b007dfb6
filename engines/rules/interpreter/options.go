package interpreter

import (
	"fmt"
	"log/slog"
)

// Option configures an Interpreter.
type Option func(*Interpreter) error

// WithLogHandler sets the slog handler used for evaluation diagnostics.
func WithLogHandler(handler slog.Handler) Option {
	return func(in *Interpreter) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		in.logHandler = handler
		in.logger = nil
		return nil
	}
}

// WithLogger sets a logger directly, keeping whatever groups it already carries.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		in.logger = logger
		in.logHandler = nil
		return nil
	}
}

// WithDiagnostics registers fn to receive every error swallowed by Evaluate.
// It runs synchronously on the evaluating goroutine.
func WithDiagnostics(fn func(error)) Option {
	return func(in *Interpreter) error {
		if fn == nil {
			return fmt.Errorf("diagnostics callback cannot be nil")
		}
		in.diagnostics = fn
		return nil
	}
}
