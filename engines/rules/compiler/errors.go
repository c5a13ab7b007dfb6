package compiler

import "errors"

var (
	ErrContentNil       = errors.New("rule content is nil")
	ErrNoStatements     = errors.New("rule has no statements")
	ErrValidationFailed = errors.New("rule validation error")
)
