package parser

import "errors"

var ErrSyntax = errors.New("syntax error")
