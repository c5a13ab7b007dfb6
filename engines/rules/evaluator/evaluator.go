// Package evaluator runs compiled rules against the data supplied by an executable
// unit's provider.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/robbyt/go-rulescript/engines/rules/interpreter"
	"github.com/robbyt/go-rulescript/engines/rules/value"
	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script"
)

var (
	ErrNoExecutableUnit = errors.New("executable unit is nil")
	ErrNoContent        = errors.New("executable content is nil")
)

// Evaluator evaluates one compiled rule. It is safe for concurrent use.
type Evaluator struct {
	execUnit *script.ExecutableUnit

	logHandler slog.Handler
	logger     *slog.Logger
}

func New(handler slog.Handler, execUnit *script.ExecutableUnit) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "rules", "Evaluator")
	return &Evaluator{
		execUnit:   execUnit,
		logHandler: handler,
		logger:     logger,
	}
}

func (be *Evaluator) String() string {
	return "rules.Evaluator"
}

func (be *Evaluator) loadInputData(ctx context.Context) (map[string]any, error) {
	logger := be.logger.WithGroup("loadInputData")

	provider := be.execUnit.GetDataProvider()
	if provider == nil {
		logger.WarnContext(ctx, "no data provider available, using empty data")
		return make(map[string]any), nil
	}

	inputData, err := provider.GetData(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get input data from provider", "error", err)
		return nil, err
	}
	logger.DebugContext(ctx, "input data loaded from provider", "keys", len(inputData))
	return inputData, nil
}

// Eval evaluates the rule. Data and setup failures are returned as errors. A rule
// that fails while evaluating (an unknown function, a missing property) is logged
// and produces a response of type data.NONE, not an error.
func (be *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	if be.execUnit == nil {
		return nil, ErrNoExecutableUnit
	}
	content := be.execUnit.GetContent()
	if content == nil || content.GetAST() == nil {
		return nil, ErrNoContent
	}

	exeID := be.execUnit.GetID()
	evalID := uuid.NewString()
	logger := be.logger.WithGroup("Eval").With("exeID", exeID, "evalID", evalID)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputData, err := be.loadInputData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get input data: %w", err)
	}

	in, err := interpreter.New(inputData, interpreter.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}

	start := time.Now()
	result := in.Evaluate(content.GetAST())
	execTime := time.Since(start)

	logger.DebugContext(ctx, "eval complete", "result", value.Inspect(result), "execTime", execTime)
	return newEvalResult(be.logHandler, result, execTime, exeID, evalID), nil
}

// AddDataToContext stores runtime data through the unit's provider.
func (be *Evaluator) AddDataToContext(
	ctx context.Context,
	d ...map[string]any,
) (context.Context, error) {
	logger := be.logger.WithGroup("AddDataToContext")
	if be.execUnit == nil {
		return ctx, ErrNoExecutableUnit
	}
	return data.AddDataToContextHelper(ctx, logger, be.execUnit.GetDataProvider(), d...)
}
