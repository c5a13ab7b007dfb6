package starlark

import (
	"fmt"
	"log/slog"
)

// DefaultMaxSteps bounds every module load and function call.
const DefaultMaxSteps uint64 = 1_000_000

type FunctionalOption func(*Provider) error

// WithNamespace nests every exported name under ns, so rules call `ns.fn()`. An empty
// namespace exports names at the top level.
func WithNamespace(ns string) FunctionalOption {
	return func(p *Provider) error {
		p.namespace = ns
		return nil
	}
}

// WithMaxSteps sets the Starlark execution step limit. Zero means unlimited.
func WithMaxSteps(steps uint64) FunctionalOption {
	return func(p *Provider) error {
		p.maxSteps = steps
		return nil
	}
}

// WithPredeclared makes host values visible to the Starlark module as globals.
func WithPredeclared(globals map[string]any) FunctionalOption {
	return func(p *Provider) error {
		p.predeclared = globals
		return nil
	}
}

func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(p *Provider) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		p.logHandler = handler
		return nil
	}
}
