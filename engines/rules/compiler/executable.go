package compiler

import (
	"github.com/robbyt/go-rulescript/engines/rules/ast"
)

// Executable is a parsed rule. It implements script.ExecutableContent.
type Executable struct {
	source string
	root   ast.Node
	names  []string
}

// NewExecutable returns nil when root is nil.
func NewExecutable(source string, root ast.Node) *Executable {
	if root == nil {
		return nil
	}
	return &Executable{
		source: source,
		root:   root,
		names:  ast.ReferencedNames(root),
	}
}

func (e *Executable) GetSource() string {
	return e.source
}

func (e *Executable) GetAST() ast.Node {
	return e.root
}

// GetNames lists the context names the rule looks up.
func (e *Executable) GetNames() []string {
	return e.names
}
