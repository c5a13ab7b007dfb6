package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-rulescript/platform/constants"
	"github.com/robbyt/go-rulescript/platform/data"
)

// DefaultConfig initializes a Config with a stderr log handler and a context
// provider, so runtime data can be added without further setup.
func DefaultConfig() *Config {
	return &Config{
		handler:      DefaultHandler(),
		dataProvider: DefaultDataProvider(),
	}
}

// DefaultHandler logs warnings and errors as text on stderr
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
}

// DefaultDataProvider reads runtime data stored under constants.EvalData
func DefaultDataProvider() data.Provider {
	return data.NewContextProvider(constants.EvalData)
}

// WithDefaults fills in any config properties that are still nil
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.dataProvider == nil {
			c.dataProvider = DefaultDataProvider()
		}
		return nil
	}
}
