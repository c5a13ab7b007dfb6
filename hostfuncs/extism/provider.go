// Package extism exposes exports of a WASM plugin as zero-argument rule functions.
// Each call instantiates the plugin, calls the export with a fixed JSON input, and
// decodes JSON output into plain Go data.
package extism

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

// Provider is a data.Provider whose values are callables backed by plugin exports.
type Provider struct {
	plugin    CompiledPlugin
	exports   []string
	namespace string
	input     map[string]any
	timeout   time.Duration

	logHandler slog.Handler
	logger     *slog.Logger
}

type FunctionalOption func(*Provider) error

// WithNamespace nests every export under ns.
func WithNamespace(ns string) FunctionalOption {
	return func(p *Provider) error {
		p.namespace = ns
		return nil
	}
}

// WithInput sets the JSON input passed to every export.
func WithInput(input map[string]any) FunctionalOption {
	return func(p *Provider) error {
		p.input = input
		return nil
	}
}

// WithTimeout bounds each export call.
func WithTimeout(d time.Duration) FunctionalOption {
	return func(p *Provider) error {
		if d < 0 {
			return fmt.Errorf("timeout cannot be negative")
		}
		p.timeout = d
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

// New exposes the listed exports of an already compiled plugin.
func New(plugin CompiledPlugin, exports []string, opts ...FunctionalOption) (*Provider, error) {
	if plugin == nil {
		return nil, ErrContentNil
	}
	p := &Provider{plugin: plugin, exports: exports}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("error applying extism option: %w", err)
		}
	}
	p.logHandler, p.logger = helpers.SetupLogger(p.logHandler, "extism", "Provider")
	return p, nil
}

// NewFromLoader reads WASM bytes from ldr and compiles them with the default settings.
func NewFromLoader(
	ctx context.Context,
	ldr loader.Loader,
	exports []string,
	opts ...FunctionalOption,
) (*Provider, error) {
	reader, err := ldr.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get wasm reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	wasm, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read wasm: %w", err)
	}

	plugin, err := CompileBytes(ctx, wasm, DefaultSettings())
	if err != nil {
		return nil, err
	}
	return New(plugin, exports, opts...)
}

func (p *Provider) String() string {
	return fmt.Sprintf("extism.Provider{Exports: %v, Namespace: %q}", p.exports, p.namespace)
}

// Call instantiates the plugin and runs one export.
func (p *Provider) Call(ctx context.Context, name string) (any, error) {
	logger := p.logger.WithGroup("Call").With("export", name)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	input, err := encodeInput(p.input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to encode input: %w", ErrCallFailed, name, err)
	}

	instance, err := p.plugin.Instance(ctx, NewPluginInstanceConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to create plugin instance: %w", ErrCallFailed, name, err)
	}
	defer func() {
		if err := instance.Close(ctx); err != nil {
			logger.WarnContext(ctx, "failed to close plugin instance", "error", err)
		}
	}()

	if !instance.FunctionExists(name) {
		return nil, fmt.Errorf("%w: %s", ErrExportMissing, name)
	}

	start := time.Now()
	exit, output, err := instance.CallWithContext(ctx, name, input)
	execTime := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: execution cancelled: %w", ErrCallFailed, name, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}
	if exit != 0 {
		return nil, fmt.Errorf("%w: %s: non-zero exit code %d", ErrCallFailed, name, exit)
	}

	result := decodeOutput(output)
	logger.DebugContext(ctx, "call complete", "execTime", execTime)
	return result, nil
}

// GetData returns one callable per export, bound to ctx.
func (p *Provider) GetData(ctx context.Context) (map[string]any, error) {
	exports := make(map[string]any, len(p.exports))
	for _, name := range p.exports {
		exports[name] = func() (any, error) { return p.Call(ctx, name) }
	}

	if p.namespace == "" {
		return exports, nil
	}
	return map[string]any{p.namespace: exports}, nil
}

// AddDataToContext always fails: the export table is fixed.
func (p *Provider) AddDataToContext(
	ctx context.Context,
	_ ...map[string]any,
) (context.Context, error) {
	return ctx, data.ErrStaticProviderNoRuntimeUpdates
}

// Close releases the compiled plugin.
func (p *Provider) Close(ctx context.Context) error {
	return p.plugin.Close(ctx)
}
