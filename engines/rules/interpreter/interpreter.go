// Package interpreter walks a rule syntax tree against a read-only host context.
//
// Identifiers evaluate to their own name. A name is looked up in the context only
// where it is consumed: as the callee of a call or the object of a member access.
// This is what makes `a.b.c` resolve `a` once and then walk concrete values, and
// what makes `a.b()` call a function stored under a nested key.
package interpreter

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-rulescript/engines/rules/ast"
	"github.com/robbyt/go-rulescript/engines/rules/value"
	"github.com/robbyt/go-rulescript/internal/helpers"
)

// Interpreter evaluates trees against one context. It holds no per-evaluation state
// and may be shared between goroutines and reused across evaluations.
type Interpreter struct {
	globals     value.Mapping
	diagnostics func(error)

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an Interpreter over a host data map. The map is wrapped, not copied,
// and is never written.
func New(globals map[string]any, opts ...Option) (*Interpreter, error) {
	return NewFromMapping(value.NewMap(globals), opts...)
}

// NewFromMapping creates an Interpreter over an existing mapping value.
func NewFromMapping(globals value.Mapping, opts ...Option) (*Interpreter, error) {
	if globals == nil {
		globals = value.NewMap(nil)
	}
	in := &Interpreter{globals: globals}

	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, fmt.Errorf("error applying interpreter option: %w", err)
		}
	}

	if in.logger != nil {
		in.logHandler = in.logger.Handler()
	} else {
		in.logHandler, in.logger = helpers.SetupLogger(in.logHandler, "rules", "Interpreter")
	}
	return in, nil
}

func (in *Interpreter) String() string {
	return "rules.Interpreter"
}

// Globals returns the context the interpreter resolves names against.
func (in *Interpreter) Globals() value.Mapping {
	return in.globals
}

// Evaluate reduces root to a value. Any failure is logged, passed to the diagnostics
// callback, and reported as value.Nothing, so callers never see an error or a panic.
func (in *Interpreter) Evaluate(root ast.Node) value.Value {
	result, err := in.TryEvaluate(root)
	if err != nil {
		in.logger.Error("evaluation failed", "error", err)
		if in.diagnostics != nil {
			in.diagnostics(err)
		}
		return value.Nothing
	}
	return result
}

// TryEvaluate is Evaluate without the recovery step: failures come back as errors
// wrapping one of the package's sentinels.
//
// Only whole programs are evaluated. A non-Program root that carries a non-empty body
// is skipped and yields value.Nothing with no error.
func (in *Interpreter) TryEvaluate(root ast.Node) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = value.Nothing
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	if !isEvaluableRoot(root) {
		in.logger.Debug("skipping non-program root with a body", "type", root.Type())
		return value.Nothing, nil
	}
	return in.evalExpr(root)
}

func isEvaluableRoot(root ast.Node) bool {
	if root == nil || root.Type() == ast.ProgramType {
		return true
	}
	b, ok := root.(ast.Bodied)
	return !ok || len(b.Statements()) == 0
}

func (in *Interpreter) evalExpr(n ast.Node) (value.Value, error) {
	switch n := n.(type) {
	case *ast.Program:
		return in.evalSequence(n.Body)
	case *ast.BlockStatement:
		return in.evalSequence(n.Body)
	case *ast.ExpressionStatement:
		return in.evalExpr(n.Expression)
	case *ast.BinaryExpression:
		return in.evalBinary(n)
	case *ast.IfStatement:
		return in.evalIf(n)
	case *ast.CallExpression:
		return in.evalCall(n)
	case *ast.MemberExpression:
		return in.evalMember(n)
	case *ast.Identifier:
		return value.String(n.Name), nil
	case *ast.Literal:
		return value.FromGo(n.Value), nil
	case nil:
		return value.Nothing, fmt.Errorf("%w: <nil>", ErrUnsupportedNodeType)
	default:
		return value.Nothing, fmt.Errorf("%w: %s", ErrUnsupportedNodeType, n.Type())
	}
}

// evalSequence runs statements in order and yields the last value.
func (in *Interpreter) evalSequence(body []ast.Node) (value.Value, error) {
	var last value.Value = value.Nothing
	for _, stmt := range body {
		v, err := in.evalExpr(stmt)
		if err != nil {
			return value.Nothing, err
		}
		last = v
	}
	return last, nil
}

// evalBinary always evaluates both operands, left first. && and || select one of the
// operand values rather than producing a boolean.
func (in *Interpreter) evalBinary(n *ast.BinaryExpression) (value.Value, error) {
	lhs, err := in.evalExpr(n.Left)
	if err != nil {
		return value.Nothing, err
	}
	rhs, err := in.evalExpr(n.Right)
	if err != nil {
		return value.Nothing, err
	}

	switch n.Operator {
	case "==":
		return value.Bool(value.StrictEqual(lhs, rhs)), nil
	case "!=":
		return value.Bool(!value.StrictEqual(lhs, rhs)), nil
	case "<":
		return ordered(lhs, rhs, func(c int) bool { return c < 0 }), nil
	case "<=":
		return ordered(lhs, rhs, func(c int) bool { return c <= 0 }), nil
	case ">":
		return ordered(lhs, rhs, func(c int) bool { return c > 0 }), nil
	case ">=":
		return ordered(lhs, rhs, func(c int) bool { return c >= 0 }), nil
	case "&&":
		if !value.Truthy(lhs) {
			return lhs, nil
		}
		return rhs, nil
	case "||":
		if value.Truthy(lhs) {
			return lhs, nil
		}
		return rhs, nil
	default:
		return value.Nothing, fmt.Errorf("%w: %q", ErrUnsupportedOperator, n.Operator)
	}
}

func ordered(lhs, rhs value.Value, accept func(int) bool) value.Value {
	c, ok := value.Compare(lhs, rhs)
	return value.Bool(ok && accept(c))
}

func (in *Interpreter) evalIf(n *ast.IfStatement) (value.Value, error) {
	test, err := in.evalExpr(n.Test)
	if err != nil {
		return value.Nothing, err
	}
	if value.Truthy(test) {
		return in.evalExpr(n.Consequent)
	}
	if n.Alternate != nil {
		return in.evalExpr(n.Alternate)
	}
	return value.Nothing, nil
}

// evalCall invokes the resolved callee with no arguments. Argument nodes are never
// evaluated.
func (in *Interpreter) evalCall(n *ast.CallExpression) (value.Value, error) {
	candidate, err := in.evalExpr(n.Callee)
	if err != nil {
		return value.Nothing, err
	}

	fn, ok := in.resolveGlobal(candidate).(value.Callable)
	if !ok {
		return value.Nothing, fmt.Errorf("%w: %s", ErrFunctionNotFound, calleeName(n.Callee, candidate))
	}

	return callHost(fn, calleeName(n.Callee, candidate))
}

func callHost(fn value.Callable, name string) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = value.Nothing
			err = fmt.Errorf("%w: %s: %v", ErrHostPanic, name, r)
		}
	}()

	result, err = fn.Call()
	if err != nil {
		return value.Nothing, fmt.Errorf("%w: %s: %w", ErrHostFunction, name, err)
	}
	return result, nil
}

func calleeName(callee ast.Node, candidate value.Value) string {
	switch c := callee.(type) {
	case *ast.Identifier:
		return c.Name
	case *ast.MemberExpression:
		return c.String()
	}
	return value.Inspect(candidate)
}

// evalMember looks the property up on the resolved object. Only the object takes part
// in global resolution; the property is used as evaluated.
func (in *Interpreter) evalMember(n *ast.MemberExpression) (value.Value, error) {
	object, err := in.evalExpr(n.Object)
	if err != nil {
		return value.Nothing, err
	}
	property, err := in.evalExpr(n.Property)
	if err != nil {
		return value.Nothing, err
	}

	object = in.resolveGlobal(object)
	key := value.ToKey(property)

	if m, ok := object.(value.Mapping); ok {
		if v, found := m.Get(key); found {
			return v, nil
		}
	}
	return value.Nothing, fmt.Errorf("%w: %q is not valid for %s", ErrPropertyNotFound, key, value.Inspect(object))
}

// resolveGlobal treats a string candidate as an unresolved name and looks it up at the
// top level of the context; a missing name resolves to value.Nothing. Other values are
// already resolved and pass through.
//
// A context value that is itself a string is indistinguishable from a name here, so
// `a.b.c` where a.b holds "x" looks up x at the top level. Hosts may rely on this.
func (in *Interpreter) resolveGlobal(candidate value.Value) value.Value {
	name, ok := candidate.(value.String)
	if !ok {
		return candidate
	}
	v, found := in.globals.Get(string(name))
	if !found || v == nil {
		in.logger.Debug("name not found in context", "name", string(name))
		return value.Nothing
	}
	return v
}
