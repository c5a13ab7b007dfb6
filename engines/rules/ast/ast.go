// Package ast defines the syntax tree consumed by the rules interpreter.
//
// The node set is closed and mirrors the ESTree shapes emitted by the original rule
// grammar: a Program of statements, blocks, if statements, binary expressions, calls,
// dotted member access, identifiers and literals. Nodes are immutable once built.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType names a node variant, using the ESTree spelling.
type NodeType string

const (
	ProgramType             NodeType = "Program"
	BlockStatementType      NodeType = "BlockStatement"
	ExpressionStatementType NodeType = "ExpressionStatement"
	BinaryExpressionType    NodeType = "BinaryExpression"
	IfStatementType         NodeType = "IfStatement"
	CallExpressionType      NodeType = "CallExpression"
	MemberExpressionType    NodeType = "MemberExpression"
	IdentifierType          NodeType = "Identifier"
	LiteralType             NodeType = "Literal"
)

// Node is implemented by every syntax tree variant in this package.
type Node interface {
	Type() NodeType
	String() string
	node()
}

// Bodied is implemented by nodes carrying an ordered body sequence.
type Bodied interface {
	Node
	Statements() []Node
}

type Program struct {
	Body []Node
}

type BlockStatement struct {
	Body []Node
}

type ExpressionStatement struct {
	Expression Node
}

type BinaryExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// IfStatement is value producing: it evaluates to its taken branch.
// Alternate is nil when there is no else branch.
type IfStatement struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

// CallExpression invokes its callee with no arguments. Arguments are kept so the
// tree reflects the source, but they are never evaluated.
type CallExpression struct {
	Callee    Node
	Arguments []Node
}

// MemberExpression is non-computed dotted access: Object.Property.
type MemberExpression struct {
	Object   Node
	Property Node
}

type Identifier struct {
	Name string
}

// Literal holds a bool, float64, string, or nil.
type Literal struct {
	Value any
}

// Unknown stands in for a node kind outside the supported set. The decoder keeps the
// kind name so evaluation can report it, and any list-shaped body it carried.
type Unknown struct {
	Kind string
	Body []Node
}

func (*Program) node()             {}
func (*BlockStatement) node()      {}
func (*ExpressionStatement) node() {}
func (*BinaryExpression) node()    {}
func (*IfStatement) node()         {}
func (*CallExpression) node()      {}
func (*MemberExpression) node()    {}
func (*Identifier) node()          {}
func (*Literal) node()             {}
func (*Unknown) node()             {}

func (*Program) Type() NodeType             { return ProgramType }
func (*BlockStatement) Type() NodeType      { return BlockStatementType }
func (*ExpressionStatement) Type() NodeType { return ExpressionStatementType }
func (*BinaryExpression) Type() NodeType    { return BinaryExpressionType }
func (*IfStatement) Type() NodeType         { return IfStatementType }
func (*CallExpression) Type() NodeType      { return CallExpressionType }
func (*MemberExpression) Type() NodeType    { return MemberExpressionType }
func (*Identifier) Type() NodeType          { return IdentifierType }
func (*Literal) Type() NodeType             { return LiteralType }
func (n *Unknown) Type() NodeType           { return NodeType(n.Kind) }

func (n *Program) Statements() []Node        { return n.Body }
func (n *BlockStatement) Statements() []Node { return n.Body }
func (n *Unknown) Statements() []Node        { return n.Body }

func (n *Program) String() string {
	return joinNodes(n.Body, "\n")
}

func (n *BlockStatement) String() string {
	return joinNodes(n.Body, "; ")
}

func (n *ExpressionStatement) String() string {
	return n.Expression.String()
}

func (n *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Operator, n.Right)
}

func (n *IfStatement) String() string {
	if n.Alternate == nil {
		return fmt.Sprintf("if %s then %s end", n.Test, n.Consequent)
	}
	return fmt.Sprintf("if %s then %s else %s end", n.Test, n.Consequent, n.Alternate)
}

func (n *CallExpression) String() string {
	return fmt.Sprintf("%s(%s)", n.Callee, joinNodes(n.Arguments, ", "))
}

func (n *MemberExpression) String() string {
	return fmt.Sprintf("%s.%s", n.Object, n.Property)
}

func (n *Identifier) String() string {
	return n.Name
}

func (n *Literal) String() string {
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (n *Unknown) String() string {
	return "<" + n.Kind + ">"
}

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

// Walk calls fn for n and every descendant in depth-first order, stopping early when
// fn returns false for a node (its children are then skipped).
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		walkAll(n.Body, fn)
	case *BlockStatement:
		walkAll(n.Body, fn)
	case *Unknown:
		walkAll(n.Body, fn)
	case *ExpressionStatement:
		Walk(n.Expression, fn)
	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *IfStatement:
		Walk(n.Test, fn)
		Walk(n.Consequent, fn)
		Walk(n.Alternate, fn)
	case *CallExpression:
		Walk(n.Callee, fn)
		walkAll(n.Arguments, fn)
	case *MemberExpression:
		Walk(n.Object, fn)
		Walk(n.Property, fn)
	}
}

func walkAll(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		Walk(n, fn)
	}
}
