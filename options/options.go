// Package options configures the evaluators built by the root rulescript package.
package options

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-rulescript/engines/rules/compiler"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

// Config holds everything needed to build a rules evaluator
type Config struct {
	handler         slog.Handler
	dataProvider    data.Provider
	loader          loader.Loader
	compilerOptions []compiler.FunctionalOption
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the log handler shared by the compiler and evaluator
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.handler = handler
		return nil
	}
}

// WithDataProvider sets the provider rules are evaluated against
func WithDataProvider(provider data.Provider) Option {
	return func(c *Config) error {
		if provider == nil {
			return fmt.Errorf("data provider cannot be nil")
		}
		c.dataProvider = provider
		return nil
	}
}

// WithStaticData evaluates against d plus any runtime data added to the context.
// Runtime data wins on conflicting keys.
func WithStaticData(d map[string]any) Option {
	return func(c *Config) error {
		c.dataProvider = data.NewCompositeProvider(
			data.NewStaticProvider(d),
			DefaultDataProvider(),
		)
		return nil
	}
}

// WithLoader sets the rule loader
func WithLoader(l loader.Loader) Option {
	return func(c *Config) error {
		if l == nil {
			return fmt.Errorf("loader cannot be nil")
		}
		c.loader = l
		return nil
	}
}

// WithCompilerOptions appends options passed to the rules compiler
func WithCompilerOptions(opts ...compiler.FunctionalOption) Option {
	return func(c *Config) error {
		c.compilerOptions = append(c.compilerOptions, opts...)
		return nil
	}
}

// WithGlobals declares the only names rules may reference. ctx is always allowed.
func WithGlobals(names ...string) Option {
	return WithCompilerOptions(compiler.WithGlobals(names), compiler.WithCtxGlobal())
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.loader == nil {
		return fmt.Errorf("no loader specified")
	}
	if c.dataProvider == nil {
		return fmt.Errorf("no data provider specified")
	}
	return nil
}

func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

func (c *Config) GetDataProvider() data.Provider {
	return c.dataProvider
}

func (c *Config) GetLoader() loader.Loader {
	return c.loader
}

func (c *Config) GetCompilerOptions() []compiler.FunctionalOption {
	return c.compilerOptions
}
