package script

import "github.com/robbyt/go-rulescript/engines/rules/ast"

// ExecutableContent is a validated rule, ready to evaluate.
type ExecutableContent interface {
	// GetSource returns the rule as it was loaded. For a rule supplied as an encoded
	// syntax tree this is the JSON document.
	GetSource() string

	// GetAST returns the parsed tree. It is shared between evaluations and must not
	// be modified.
	GetAST() ast.Node
}
