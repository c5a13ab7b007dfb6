package data

import (
	"context"
	"errors"
	"fmt"
)

// CompositeProvider layers several providers. Later providers win on conflicting
// keys, and nested maps are merged rather than replaced.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider queries providers in the given order. nil entries are skipped.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{providers: providers}
}

// GetData merges the data of every provider. The first provider error aborts the call.
func (p *CompositeProvider) GetData(ctx context.Context) (map[string]any, error) {
	result := make(map[string]any)
	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		d, err := provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %d: %w", i, err)
		}
		result = deepMerge(result, d)
	}
	return result, nil
}

// AddDataToContext hands the data to every provider that accepts runtime updates.
// Static providers refusing the data are not an error unless no provider accepted it.
func (p *CompositeProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	current := ctx
	var errz, refused []error
	accepted := 0

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		next, err := provider.AddDataToContext(current, data...)
		switch {
		case errors.Is(err, ErrStaticProviderNoRuntimeUpdates):
			refused = append(refused, fmt.Errorf("provider %d: %w", i, err))
		case err != nil:
			errz = append(errz, fmt.Errorf("provider %d: %w", i, err))
		default:
			current = next
			accepted++
		}
	}

	if accepted > 0 {
		return current, nil
	}
	if len(errz) > 0 {
		return ctx, errors.Join(errz...)
	}
	if len(refused) > 0 {
		return ctx, errors.Join(refused...)
	}
	return ctx, nil
}

// deepMerge returns a new map holding base overlaid with top.
func deepMerge(base, top map[string]any) map[string]any {
	result := cloneMap(base)
	for k, topVal := range top {
		baseMap, baseIsMap := result[k].(map[string]any)
		topMap, topIsMap := topVal.(map[string]any)
		if baseIsMap && topIsMap {
			result[k] = deepMerge(baseMap, topMap)
			continue
		}
		result[k] = cloneValue(topVal)
	}
	return result
}
