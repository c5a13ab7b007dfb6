// Package starlark exposes the functions and values defined by a Starlark module as
// rule data. Every top-level function without parameters becomes a zero-argument
// callable, and every other supported global becomes a plain value.
package starlark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

// Provider is a data.Provider over the frozen globals of a Starlark module. It is
// safe for concurrent use: each call runs on its own thread.
type Provider struct {
	name        string
	namespace   string
	maxSteps    uint64
	predeclared map[string]any
	globals     starlarkLib.StringDict

	logHandler slog.Handler
	logger     *slog.Logger
}

// New loads and runs the module in src once. name is used in Starlark error
// messages.
func New(name string, src []byte, opts ...FunctionalOption) (*Provider, error) {
	if src == nil {
		return nil, ErrContentNil
	}

	p := &Provider{name: name, maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("error applying starlark option: %w", err)
		}
	}
	p.logHandler, p.logger = helpers.SetupLogger(p.logHandler, "starlark", "Provider")

	globals, err := p.load(src)
	if err != nil {
		return nil, err
	}
	p.globals = globals
	return p, nil
}

// NewFromLoader reads the module from any rule loader.
func NewFromLoader(ldr loader.Loader, opts ...FunctionalOption) (*Provider, error) {
	reader, err := ldr.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get starlark reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read starlark source: %w", err)
	}

	name := "module.star"
	if u := ldr.GetSourceURL(); u != nil {
		name = u.String()
	}
	return New(name, src, opts...)
}

func (p *Provider) String() string {
	return fmt.Sprintf("starlark.Provider{Name: %s, Namespace: %q}", p.name, p.namespace)
}

func (p *Provider) newThread(ctx context.Context, name string) *starlarkLib.Thread {
	thread := &starlarkLib.Thread{
		Name: name,
		Print: func(thread *starlarkLib.Thread, msg string) {
			p.logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
		},
	}
	if p.maxSteps > 0 {
		thread.SetMaxExecutionSteps(p.maxSteps)
	}
	return thread
}

// load compiles and initializes the module, then freezes its globals so they can be
// shared between threads.
func (p *Provider) load(src []byte) (starlarkLib.StringDict, error) {
	predeclared := standardModules()
	hostGlobals, err := toStringDict(p.predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	hostGlobals.Freeze()
	for k, v := range hostGlobals {
		predeclared[k] = v
	}

	opts := &syntax.FileOptions{}
	f, err := opts.Parse(p.name, src, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	prog, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	globals, err := prog.Init(p.newThread(context.Background(), "load"), predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecFailed, err)
	}
	globals.Freeze()

	p.logger.Debug("starlark module loaded", "name", p.name, "globals", len(globals))
	return globals, nil
}

// Names lists the exported globals in sorted order.
func (p *Provider) Names() []string {
	names := make([]string, 0, len(p.globals))
	for _, name := range p.globals.Keys() {
		if exported(name) {
			names = append(names, name)
		}
	}
	return names
}

func exported(name string) bool {
	return !strings.HasPrefix(name, "_")
}

// Call runs the named zero-parameter function. ctx cancels a running call.
func (p *Provider) Call(ctx context.Context, name string) (any, error) {
	fn, ok := p.globals[name].(*starlarkLib.Function)
	if !ok || !exported(name) {
		return nil, fmt.Errorf("%w: %s is not a function", ErrCallFailed, name)
	}
	return p.call(ctx, fn)
}

func (p *Provider) call(ctx context.Context, fn *starlarkLib.Function) (any, error) {
	logger := p.logger.WithGroup("call").With("function", fn.Name())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	thread := p.newThread(ctx, fn.Name())
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	result, err := starlarkLib.Call(thread, fn, nil, nil)
	if err != nil {
		logger.DebugContext(ctx, "call failed", "error", err, "steps", thread.ExecutionSteps())
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, fn.Name(), err)
	}

	out, err := toGo(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, fn.Name(), err)
	}
	logger.DebugContext(ctx, "call complete", "steps", thread.ExecutionSteps())
	return out, nil
}

// GetData returns the module's exports. Functions are bound to ctx, so cancelling it
// stops any call still running.
func (p *Provider) GetData(ctx context.Context) (map[string]any, error) {
	logger := p.logger.WithGroup("GetData")

	exports := make(map[string]any, len(p.globals))
	for _, name := range p.Names() {
		switch v := p.globals[name].(type) {
		case *starlarkLib.Function:
			if v.NumParams() > 0 {
				logger.DebugContext(ctx, "skipping function with parameters", "name", name)
				continue
			}
			exports[name] = func() (any, error) { return p.call(ctx, v) }
		case *starlarkLib.Builtin:
			continue
		default:
			goVal, err := toGo(v)
			if err != nil {
				logger.DebugContext(ctx, "skipping unsupported global", "name", name, "error", err)
				continue
			}
			exports[name] = goVal
		}
	}

	if p.namespace == "" {
		return exports, nil
	}
	return map[string]any{p.namespace: exports}, nil
}

// AddDataToContext always fails: module exports are fixed once loaded.
func (p *Provider) AddDataToContext(
	ctx context.Context,
	_ ...map[string]any,
) (context.Context, error) {
	return ctx, data.ErrStaticProviderNoRuntimeUpdates
}
