package data

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform/constants"
)

// ContextProvider keeps runtime data in a context.Context under a fixed key.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider creates a provider that reads and writes data under contextKey,
// normally constants.EvalData.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{contextKey: contextKey}
}

// GetData returns the map stored in ctx, or an empty map when nothing was stored.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, ErrEmptyContextKey
	}

	stored := ctx.Value(p.contextKey)
	if stored == nil {
		return make(map[string]any), nil
	}

	d, ok := stored.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected map[string]any in context, got %T", ErrInvalidData, stored)
	}
	return d, nil
}

// AddDataToContext merges each map into the data already stored in ctx and returns a
// derived context. Nested maps merge key by key; any other value replaces what was
// there. Keys are stored at the top level exactly as given; callers that want rules to
// read `ctx.request.method` pass {constants.Ctx: {"request": req}}. HTTP requests are
// converted with helpers.RequestToMap at any depth.
//
// Bad entries are reported together but do not stop the remaining data from being
// stored.
func (p *ContextProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, ErrEmptyContextKey
	}

	toStore := make(map[string]any)
	if existing, ok := ctx.Value(p.contextKey).(map[string]any); ok {
		toStore = cloneMap(existing)
	}

	var errz []error
	for _, m := range data {
		for key, v := range m {
			if key == "" {
				errz = append(errz, fmt.Errorf("%w: empty keys are not allowed", ErrInvalidData))
				continue
			}
			converted, err := convertValue(v)
			if err != nil {
				errz = append(errz, fmt.Errorf("key %q: %w", key, err))
				continue
			}
			mergeValue(toStore, key, converted)
		}
	}

	return context.WithValue(ctx, p.contextKey, toStore), errors.Join(errz...)
}

func convertValue(v any) (any, error) {
	switch v := v.(type) {
	case *http.Request:
		if v == nil {
			return nil, nil
		}
		return helpers.RequestToMap(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			if k == "" {
				return nil, fmt.Errorf("%w: empty keys are not allowed in nested maps", ErrInvalidData)
			}
			converted, err := convertValue(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}

func mergeValue(target map[string]any, key string, v any) {
	incoming, ok := v.(map[string]any)
	if !ok {
		target[key] = v
		return
	}
	existing, ok := target[key].(map[string]any)
	if !ok {
		target[key] = incoming
		return
	}
	for k, item := range incoming {
		mergeValue(existing, k, item)
	}
}
