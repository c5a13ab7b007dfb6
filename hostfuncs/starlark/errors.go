package starlark

import "errors"

var (
	ErrContentNil    = errors.New("starlark source is nil")
	ErrCompileFailed = errors.New("failed to compile starlark source")
	ErrExecFailed    = errors.New("failed to execute starlark source")
	ErrCallFailed    = errors.New("starlark function call failed")
)
