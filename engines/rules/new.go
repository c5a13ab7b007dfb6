// Package rules wires the rule compiler and evaluator to the platform loaders and
// data providers.
package rules

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-rulescript/engines/rules/compiler"
	"github.com/robbyt/go-rulescript/engines/rules/evaluator"
	"github.com/robbyt/go-rulescript/platform/constants"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

// FromRulesLoader creates an evaluator whose data comes only from the context, via
// AddDataToContext.
func FromRulesLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
) (*evaluator.Evaluator, error) {
	return NewEvaluator(logHandler, ldr, data.NewContextProvider(constants.EvalData))
}

// FromRulesLoaderWithData creates an evaluator over staticData plus any runtime data
// added to the context. Runtime data wins on conflicting keys.
func FromRulesLoaderWithData(
	logHandler slog.Handler,
	ldr loader.Loader,
	staticData map[string]any,
) (*evaluator.Evaluator, error) {
	provider := data.NewCompositeProvider(
		data.NewStaticProvider(staticData),
		data.NewContextProvider(constants.EvalData),
	)
	return NewEvaluator(logHandler, ldr, provider)
}

func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator compiles the rule from ldr and returns an evaluator ready to run it.
// The executable unit's ID is the loader's source URL.
func NewEvaluator(
	logHandler slog.Handler,
	ldr loader.Loader,
	dataProvider data.Provider,
	opts ...compiler.FunctionalOption,
) (*evaluator.Evaluator, error) {
	if ldr == nil {
		return nil, fmt.Errorf("loader is nil")
	}
	if dataProvider == nil {
		return nil, fmt.Errorf("provider is nil")
	}

	if logHandler != nil {
		opts = append([]compiler.FunctionalOption{compiler.WithLogHandler(logHandler)}, opts...)
	}
	comp, err := NewCompiler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create rules compiler: %w", err)
	}

	execUnitID := ""
	if sourceURL := ldr.GetSourceURL(); sourceURL != nil {
		execUnitID = sourceURL.String()
	}

	execUnit, err := script.NewExecutableUnit(logHandler, execUnitID, ldr, comp, dataProvider)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit), nil
}
