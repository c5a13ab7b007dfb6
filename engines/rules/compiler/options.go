package compiler

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform/constants"
)

// Format selects how Compile reads its input.
type Format int

const (
	// FormatAuto treats input starting with '{' as an encoded tree and anything else
	// as rule source.
	FormatAuto Format = iota
	FormatSource
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatSource:
		return "source"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FunctionalOption configures a Compiler.
type FunctionalOption func(*Compiler) error

// WithFormat forces the input format instead of detecting it.
func WithFormat(format Format) FunctionalOption {
	return func(c *Compiler) error {
		switch format {
		case FormatAuto, FormatSource, FormatJSON:
			c.format = format
			return nil
		}
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WithGlobals declares the names a rule may resolve against its context. When
// globals are declared, a rule referencing any other name fails to compile.
func WithGlobals(globals []string) FunctionalOption {
	return func(c *Compiler) error {
		c.globals = globals
		return nil
	}
}

// WithCtxGlobal adds constants.Ctx to the declared globals.
func WithCtxGlobal() FunctionalOption {
	return func(c *Compiler) error {
		if !slices.Contains(c.globals, constants.Ctx) {
			c.globals = append(c.globals, constants.Ctx)
		}
		return nil
	}
}

func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		c.logger = nil
		return nil
	}
}

// WithLogger uses logger as is, keeping any groups it already has.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		c.logHandler = nil
		return nil
	}
}

func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "rules", "Compiler")
	}
}
