// Package script ties a loaded, compiled rule to the data it is evaluated against.
package script

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

const checksumLength = 12

// ExecutableUnit is one compiled version of a rule.
type ExecutableUnit struct {
	// ID is the caller-supplied version ID, or a checksum of the rule source.
	ID string

	CreatedAt    time.Time
	ScriptLoader loader.Loader
	Compiler     Compiler
	Content      ExecutableContent

	// DataProvider supplies the context for every evaluation.
	DataProvider data.Provider

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewExecutableUnit loads and compiles the rule. An empty versionID is replaced by
// a short checksum of the compiled source, so identical rules share an ID.
func NewExecutableUnit(
	handler slog.Handler,
	versionID string,
	scriptLoader loader.Loader,
	compiler Compiler,
	dataProvider data.Provider,
) (*ExecutableUnit, error) {
	handler, logger := helpers.SetupLogger(handler, "script", "ExecutableUnit")

	if scriptLoader == nil {
		return nil, ErrNoLoader
	}
	if compiler == nil {
		return nil, fmt.Errorf("%w: compiler is nil", ErrCompiler)
	}

	reader, err := scriptLoader.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get reader from loader: %w", err)
	}

	content, err := compiler.Compile(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompiler, err)
	}

	if versionID == "" {
		versionID = helpers.ShortID(helpers.SHA256(content.GetSource()), checksumLength)
	}

	if dataProvider == nil {
		dataProvider = data.NewStaticProvider(nil)
	}

	logger = logger.With("ID", versionID)
	logger.Debug("executable unit created", "loader", scriptLoader)

	return &ExecutableUnit{
		ID:           versionID,
		CreatedAt:    time.Now(),
		ScriptLoader: scriptLoader,
		Compiler:     compiler,
		Content:      content,
		DataProvider: dataProvider,
		logHandler:   handler,
		logger:       logger,
	}, nil
}

func (exe *ExecutableUnit) String() string {
	return fmt.Sprintf("ExecutableUnit{ID: %s, CreatedAt: %s, Compiler: %s, Loader: %s}",
		exe.ID, exe.CreatedAt.Format(time.RFC3339), exe.Compiler, exe.ScriptLoader)
}

func (exe *ExecutableUnit) GetID() string {
	return exe.ID
}

func (exe *ExecutableUnit) GetContent() ExecutableContent {
	return exe.Content
}

func (exe *ExecutableUnit) GetCreatedAt() time.Time {
	return exe.CreatedAt
}

func (exe *ExecutableUnit) GetCompiler() Compiler {
	return exe.Compiler
}

func (exe *ExecutableUnit) GetLoader() loader.Loader {
	return exe.ScriptLoader
}

func (exe *ExecutableUnit) GetDataProvider() data.Provider {
	return exe.DataProvider
}
