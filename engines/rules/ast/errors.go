package ast

import "errors"

var (
	ErrInvalidAST      = errors.New("invalid rule AST")
	ErrComputedMember  = errors.New("computed member access is not supported")
	ErrUnsupportedNode = errors.New("node cannot be encoded")
)
