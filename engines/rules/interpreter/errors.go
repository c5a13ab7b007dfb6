package interpreter

import "errors"

var (
	ErrUnsupportedNodeType = errors.New("unsupported node type")
	ErrUnsupportedOperator = errors.New("unsupported binary operator")
	ErrFunctionNotFound    = errors.New("function not found")
	ErrPropertyNotFound    = errors.New("property not found")

	// ErrHostFunction wraps an error returned by a host callable.
	ErrHostFunction = errors.New("host function failed")
	// ErrHostPanic is reported when a host callable panics during evaluation.
	ErrHostPanic = errors.New("host function panicked")
	// ErrPanic is reported when evaluation panics outside a host callable, such as
	// on a malformed tree.
	ErrPanic = errors.New("evaluation panicked")
)
