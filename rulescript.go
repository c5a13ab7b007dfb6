// Package rulescript evaluates small boolean and value rules against host data.
//
// A rule is compiled once and evaluated many times:
//
//	eval, err := rulescript.FromRulesString(`user.age >= 18 && "adult" || "minor"`,
//		options.WithStaticData(map[string]any{"user": map[string]any{"age": 21}}))
//	if err != nil {
//		return err
//	}
//	result, err := eval.Eval(ctx)
package rulescript

import (
	"context"
	"fmt"

	"github.com/robbyt/go-rulescript/engines/rules"
	"github.com/robbyt/go-rulescript/engines/rules/compiler"
	"github.com/robbyt/go-rulescript/options"
	"github.com/robbyt/go-rulescript/platform"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

// NewRulesEvaluator builds an evaluator from options. A loader is required.
func NewRulesEvaluator(opts ...options.Option) (platform.Evaluator, error) {
	cfg := options.DefaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return rules.NewEvaluator(
		cfg.GetHandler(),
		cfg.GetLoader(),
		cfg.GetDataProvider(),
		cfg.GetCompilerOptions()...,
	)
}

// FromRulesString creates an evaluator from rule source text
func FromRulesString(content string, opts ...options.Option) (platform.Evaluator, error) {
	l, err := loader.NewFromString(content)
	if err != nil {
		return nil, err
	}
	return NewRulesEvaluator(append([]options.Option{options.WithLoader(l)}, opts...)...)
}

// FromRulesStringWithData creates an evaluator from rule source text over static data
func FromRulesStringWithData(
	content string,
	staticData map[string]any,
	opts ...options.Option,
) (platform.Evaluator, error) {
	return FromRulesString(content, append([]options.Option{options.WithStaticData(staticData)}, opts...)...)
}

// FromRulesFile creates an evaluator from a rule file. Files ending in .zst are
// decompressed, and files holding an ESTree JSON document are decoded as such.
func FromRulesFile(filePath string, opts ...options.Option) (platform.Evaluator, error) {
	l, err := loader.NewFromDisk(filePath)
	if err != nil {
		return nil, err
	}
	return NewRulesEvaluator(append([]options.Option{options.WithLoader(l)}, opts...)...)
}

// FromRulesJSON creates an evaluator from an ESTree JSON syntax tree
func FromRulesJSON(doc []byte, opts ...options.Option) (platform.Evaluator, error) {
	l, err := loader.NewFromBytes(doc)
	if err != nil {
		return nil, err
	}
	return NewRulesEvaluator(append([]options.Option{
		options.WithLoader(l),
		options.WithCompilerOptions(compiler.WithFormat(compiler.FormatJSON)),
	}, opts...)...)
}

// FromRulesAny creates an evaluator from a loader, raw bytes, a path, a URL, or
// inline source, picking the loader with loader.InferLoader.
func FromRulesAny(input any, opts ...options.Option) (platform.Evaluator, error) {
	l, err := loader.InferLoader(input)
	if err != nil {
		return nil, err
	}
	return NewRulesEvaluator(append([]options.Option{options.WithLoader(l)}, opts...)...)
}

// Evaluate compiles source and evaluates it once against d. The result is plain Go
// data; a rule that fails while evaluating yields nil.
func Evaluate(ctx context.Context, source string, d map[string]any, opts ...options.Option) (any, error) {
	eval, err := FromRulesStringWithData(source, d, opts...)
	if err != nil {
		return nil, err
	}
	result, err := eval.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return result.Interface(), nil
}
