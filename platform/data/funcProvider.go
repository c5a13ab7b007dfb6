package data

import (
	"context"
	"fmt"
)

// FuncProvider computes data on every call. Host function tables plug into the
// provider chain through it.
type FuncProvider struct {
	name string
	fn   func(ctx context.Context) (map[string]any, error)
}

// NewFuncProvider wraps fn; name only appears in errors and logs.
func NewFuncProvider(name string, fn func(ctx context.Context) (map[string]any, error)) *FuncProvider {
	return &FuncProvider{name: name, fn: fn}
}

func (p *FuncProvider) String() string {
	return fmt.Sprintf("data.FuncProvider{Name: %s}", p.name)
}

func (p *FuncProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.fn == nil {
		return make(map[string]any), nil
	}
	d, err := p.fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	if d == nil {
		return make(map[string]any), nil
	}
	return d, nil
}

// AddDataToContext always fails: the function owns its data.
func (p *FuncProvider) AddDataToContext(
	ctx context.Context,
	_ ...map[string]any,
) (context.Context, error) {
	return ctx, fmt.Errorf("%w: %s", ErrStaticProviderNoRuntimeUpdates, p.name)
}
