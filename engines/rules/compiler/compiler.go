// Package compiler parses rule source, or a JSON-encoded syntax tree, into an
// Executable and rejects trees the interpreter could never evaluate successfully.
package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/robbyt/go-rulescript/engines/rules/ast"
	"github.com/robbyt/go-rulescript/engines/rules/parser"
	"github.com/robbyt/go-rulescript/platform/script"
)

var operators = []string{"==", "!=", "<", "<=", ">", ">=", "&&", "||"}

// Compiler implements script.Compiler for rules.
type Compiler struct {
	format  Format
	globals []string

	logHandler slog.Handler
	logger     *slog.Logger
}

func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}
	c.setupLogger()
	return c, nil
}

func (c *Compiler) String() string {
	return "rules.Compiler"
}

// Compile reads and closes scriptReader.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	logger := c.logger.WithGroup("Compile")
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	content, err := io.ReadAll(scriptReader)
	closeErr := scriptReader.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read rule: %w", err)
	}
	if closeErr != nil {
		logger.Warn("failed to close reader", "error", closeErr)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrContentNil
	}

	format := c.detectFormat(content)
	logger = logger.With("format", format.String())

	var root ast.Node
	switch format {
	case FormatJSON:
		root, err = ast.DecodeJSON(content)
	default:
		root, err = parser.Parse(bytes.NewReader(content))
	}
	if err != nil {
		logger.Debug("rule rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := c.validate(root); err != nil {
		logger.Debug("rule rejected", "error", err)
		return nil, err
	}

	exe := NewExecutable(string(content), root)
	logger.Debug("rule compiled", "names", exe.GetNames())
	return exe, nil
}

func (c *Compiler) detectFormat(content []byte) Format {
	if c.format != FormatAuto {
		return c.format
	}
	if trimmed := bytes.TrimSpace(content); trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatSource
}

// validate rejects empty programs, node kinds and operators outside the supported
// set, and, when globals are declared, references to undeclared names.
func (c *Compiler) validate(root ast.Node) error {
	if b, ok := root.(ast.Bodied); ok && len(b.Statements()) == 0 {
		return ErrNoStatements
	}
	if _, ok := root.(*ast.Program); !ok {
		if _, bodied := root.(ast.Bodied); bodied {
			return fmt.Errorf("%w: root must be a Program, got %s", ErrValidationFailed, root.Type())
		}
	}

	var errz []error
	var check func(ast.Node) bool
	check = func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Unknown:
			errz = append(errz, fmt.Errorf("unsupported node type %s", n.Kind))
			return false
		case *ast.BinaryExpression:
			if !slices.Contains(operators, n.Operator) {
				errz = append(errz, fmt.Errorf("unsupported operator %q", n.Operator))
			}
		case *ast.CallExpression:
			// Arguments are never evaluated, so only the callee is checked.
			ast.Walk(n.Callee, check)
			return false
		}
		return true
	}
	ast.Walk(root, check)

	if len(c.globals) > 0 {
		for _, name := range ast.ReferencedNames(root) {
			if !slices.Contains(c.globals, name) {
				errz = append(errz, fmt.Errorf("undeclared name %q", name))
			}
		}
	}

	if len(errz) > 0 {
		return fmt.Errorf("%w: %w", ErrValidationFailed, errors.Join(errz...))
	}
	return nil
}
