package platform

import (
	"context"

	"github.com/robbyt/go-rulescript/platform/data"
)

// EvalOnly evaluates an already compiled rule.
type EvalOnly interface {
	// Eval runs the rule against the data its provider returns for ctx. Compiling
	// happens once when the evaluator is built; Eval can then run many times, with
	// per-request data attached to ctx by AddDataToContext.
	Eval(ctx context.Context) (EvaluatorResponse, error)
}

// Evaluator prepares data and evaluates. The two steps can happen in different
// places as long as the context travels between them.
type Evaluator interface {
	EvalOnly
	data.Setter
}

// EvaluatorResponse is the result of one evaluation.
type EvaluatorResponse interface {
	// Type of the result value.
	Type() data.Types

	// Inspect renders the result for humans and logs.
	Inspect() string

	// Interface converts the result to a Go value: nil, bool, float64, string,
	// map[string]any, []any, or the host function that was returned.
	Interface() any

	// GetScriptExeID identifies the compiled rule that produced the result.
	GetScriptExeID() string

	// GetEvalID is unique to each evaluation.
	GetEvalID() string

	// GetExecTime is how long the evaluation took.
	GetExecTime() string
}
