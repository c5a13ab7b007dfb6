// Package constants holds keys shared between data providers and evaluators.
package constants

// ContextKey is a distinct type for context keys so they cannot collide with keys
// from other packages.
type ContextKey string

const (
	// EvalData is the context key under which runtime rule data is stored.
	EvalData ContextKey = "eval_data"

	// Ctx is the conventional top-level key for request-scoped data. Providers store
	// keys as given, so callers nest request data under Ctx for a rule to read it as
	// `ctx.user.role`.
	Ctx = "ctx"
)
