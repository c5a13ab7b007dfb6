package data

import (
	"context"
	"fmt"
)

// StaticProvider returns the same data on every call. It suits configuration,
// lookup tables, and host function tables that do not change between evaluations.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider stores a deep copy of data; a nil map is treated as empty.
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{data: cloneMap(data)}
}

// GetData returns a copy, so rules and callers cannot change what later
// evaluations see.
func (p *StaticProvider) GetData(_ context.Context) (map[string]any, error) {
	return cloneMap(p.data), nil
}

// AddDataToContext always fails: static data is fixed at construction.
func (p *StaticProvider) AddDataToContext(
	ctx context.Context,
	_ ...map[string]any,
) (context.Context, error) {
	return ctx, fmt.Errorf("%w: use a ContextProvider for request data", ErrStaticProviderNoRuntimeUpdates)
}

// cloneMap copies nested maps and slices of any; other values are shared.
func cloneMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
