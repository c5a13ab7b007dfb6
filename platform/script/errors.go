package script

import "errors"

var (
	ErrCompiler = errors.New("compiler failed or is invalid")
	ErrNoLoader = errors.New("loader is nil")
)
