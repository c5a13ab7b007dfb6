package evaluator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-rulescript/engines/rules/value"
	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform/data"
)

// execResult implements platform.EvaluatorResponse.
type execResult struct {
	result      value.Value
	execTime    time.Duration
	scriptExeID string
	evalID      string

	logger *slog.Logger
}

func newEvalResult(
	handler slog.Handler,
	val value.Value,
	execTime time.Duration,
	scriptExeID string,
	evalID string,
) *execResult {
	_, logger := helpers.SetupLogger(handler, "rules", "execResult")
	if val == nil {
		val = value.Nothing
	}
	return &execResult{
		result:      val,
		execTime:    execTime,
		scriptExeID: scriptExeID,
		evalID:      evalID,
		logger:      logger,
	}
}

func (r *execResult) String() string {
	return fmt.Sprintf(
		"execResult{Type: %s, Value: %s, ExecTime: %s, ScriptExeID: %s, EvalID: %s}",
		r.Type(), r.Inspect(), r.GetExecTime(), r.GetScriptExeID(), r.GetEvalID(),
	)
}

func (r *execResult) Type() data.Types {
	switch r.result.Kind() {
	case value.NothingKind:
		return data.NONE
	case value.NullKind:
		return data.NULL
	case value.BoolKind:
		return data.BOOL
	case value.NumberKind:
		return data.FLOAT
	case value.StringKind:
		return data.STRING
	case value.MapKind:
		return data.MAP
	case value.ListKind:
		return data.LIST
	case value.FunctionKind:
		return data.FUNCTION
	case value.OpaqueKind:
		return data.OPAQUE
	default:
		r.logger.Error("unknown value kind", "kind", r.result.Kind())
		return data.NONE
	}
}

func (r *execResult) Inspect() string {
	return value.Inspect(r.result)
}

func (r *execResult) Interface() any {
	return value.ToGo(r.result)
}

func (r *execResult) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *execResult) GetEvalID() string {
	return r.evalID
}

func (r *execResult) GetExecTime() string {
	return r.execTime.String()
}
