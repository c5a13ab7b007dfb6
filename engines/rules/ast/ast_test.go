package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fooBarCall builds `if foo.bar() == 7 then ok end`.
func fooBarCall() *Program {
	return &Program{Body: []Node{
		&IfStatement{
			Test: &BinaryExpression{
				Operator: "==",
				Left: &CallExpression{
					Callee: &MemberExpression{
						Object:   &Identifier{Name: "foo"},
						Property: &Identifier{Name: "bar"},
					},
				},
				Right: &Literal{Value: 7.0},
			},
			Consequent: &BlockStatement{Body: []Node{
				&ExpressionStatement{Expression: &Identifier{Name: "ok"}},
			}},
		},
	}}
}

func TestNode_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"identifier", &Identifier{Name: "foo"}, "foo"},
		{"string literal", &Literal{Value: "a"}, `"a"`},
		{"number literal", &Literal{Value: 1.5}, "1.5"},
		{"null literal", &Literal{}, "null"},
		{"bool literal", &Literal{Value: true}, "true"},
		{"unknown", &Unknown{Kind: "WhileStatement"}, "<WhileStatement>"},
		{"if", fooBarCall().Body[0], "if (foo.bar() == 7) then ok end"},
		{
			"if else",
			&IfStatement{
				Test:       &Literal{Value: false},
				Consequent: &BlockStatement{Body: []Node{&Literal{Value: 1.0}}},
				Alternate:  &BlockStatement{Body: []Node{&Literal{Value: 2.0}, &Literal{Value: 3.0}}},
			},
			"if false then 1 else 2; 3 end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestBodied(t *testing.T) {
	t.Parallel()

	var n Node = &BlockStatement{Body: []Node{&Literal{Value: true}}}
	b, ok := n.(Bodied)
	assert.True(t, ok)
	assert.Len(t, b.Statements(), 1)

	_, ok = Node(&Identifier{Name: "x"}).(Bodied)
	assert.False(t, ok, "identifiers carry no body")

	assert.Equal(t, NodeType("WhileStatement"), (&Unknown{Kind: "WhileStatement"}).Type())
}

func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("visits every node", func(t *testing.T) {
		var kinds []NodeType
		Walk(fooBarCall(), func(n Node) bool {
			kinds = append(kinds, n.Type())
			return true
		})
		assert.Equal(t, []NodeType{
			ProgramType,
			IfStatementType,
			BinaryExpressionType,
			CallExpressionType,
			MemberExpressionType,
			IdentifierType,
			IdentifierType,
			LiteralType,
			BlockStatementType,
			ExpressionStatementType,
			IdentifierType,
		}, kinds)
	})

	t.Run("pruning skips children", func(t *testing.T) {
		count := 0
		Walk(fooBarCall(), func(n Node) bool {
			count++
			return n.Type() != IfStatementType
		})
		assert.Equal(t, 2, count)
	})

	t.Run("nil node", func(t *testing.T) {
		Walk(nil, func(Node) bool {
			t.Fatal("callback must not run")
			return true
		})
	})
}

func TestReferencedNames(t *testing.T) {
	t.Parallel()

	prog := &Program{Body: []Node{
		&ExpressionStatement{Expression: &BinaryExpression{
			Operator: "&&",
			Left:     &CallExpression{Callee: &Identifier{Name: "isAdmin"}},
			Right: &MemberExpression{
				Object: &MemberExpression{
					Object:   &Identifier{Name: "user"},
					Property: &Identifier{Name: "profile"},
				},
				Property: &Identifier{Name: "age"},
			},
		}},
		&ExpressionStatement{Expression: &Identifier{Name: "bare"}},
		&ExpressionStatement{Expression: &CallExpression{
			Callee:    &Identifier{Name: "isAdmin"},
			Arguments: []Node{&MemberExpression{Object: &Identifier{Name: "ignored"}, Property: &Identifier{Name: "x"}}},
		}},
		&ExpressionStatement{Expression: &CallExpression{Callee: &MemberExpression{
			Object:   &Identifier{Name: "rates"},
			Property: &Identifier{Name: "current"},
		}}},
	}}

	assert.Equal(t, []string{"isAdmin", "rates", "user"}, ReferencedNames(prog))
	assert.Empty(t, ReferencedNames(&Literal{Value: 1.0}))
}
