// Package data supplies the context that rules are evaluated against. A Provider is
// asked for a fresh map on every evaluation; providers can be stacked with
// CompositeProvider so static configuration and per-request data share one context.
package data

import (
	"context"
)

// Getter returns the data a rule is evaluated against.
type Getter interface {
	GetData(ctx context.Context) (map[string]any, error)
}

// Setter attaches runtime data to a context so a later Getter call can return it.
// Preparing data and evaluating can then happen in different places: an HTTP
// middleware adds the request, a handler further down evaluates the rule.
//
// Example:
//
//	ctx, err := evaluator.AddDataToContext(ctx, map[string]any{"user": user})
//	if err != nil {
//		return err
//	}
//	result, err := evaluator.Eval(ctx)
type Setter interface {
	AddDataToContext(ctx context.Context, data ...map[string]any) (context.Context, error)
}

// Provider is both a Getter and a Setter.
type Provider interface {
	Getter
	Setter
}
