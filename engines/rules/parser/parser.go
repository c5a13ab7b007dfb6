// Package parser turns rule source into the syntax tree evaluated by the interpreter.
//
// The grammar covers literals (numbers, quoted strings, true, false, null), identifiers,
// dotted member access, calls, the operators == != < <= > >= && ||, parentheses, and
//
//	if <test> then
//	  <statements>
//	else
//	  <statements>
//	end
//
// Statements are separated by newlines or semicolons.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robbyt/go-rulescript/engines/rules/ast"
)

const (
	powLowest = iota
	powOr
	powAnd
	powEquality
	powRelational
	powPostfix
)

var bindings = map[rune]int{
	Or:     powOr,
	And:    powAnd,
	Eq:     powEquality,
	Ne:     powEquality,
	Lt:     powRelational,
	Le:     powRelational,
	Gt:     powRelational,
	Ge:     powRelational,
	Dot:    powPostfix,
	Lparen: powPostfix,
}

var operators = map[rune]string{
	Or:  "||",
	And: "&&",
	Eq:  "==",
	Ne:  "!=",
	Lt:  "<",
	Le:  "<=",
	Gt:  ">",
	Ge:  ">=",
}

func ParseString(str string) (*ast.Program, error) {
	return Parse(strings.NewReader(str))
}

func Parse(r io.Reader) (*ast.Program, error) {
	p, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

type Parser struct {
	scan *Scanner
	curr Token
	peek Token

	prefix map[rune]func() (ast.Node, error)
	infix  map[rune]func(ast.Node) (ast.Node, error)
}

func NewParser(r io.Reader) (*Parser, error) {
	scan, err := Scan(r)
	if err != nil {
		return nil, err
	}
	p := Parser{
		scan:   scan,
		prefix: make(map[rune]func() (ast.Node, error)),
		infix:  make(map[rune]func(ast.Node) (ast.Node, error)),
	}

	for op := range operators {
		p.registerInfix(op, p.parseBinary)
	}
	p.registerInfix(Dot, p.parseDot)
	p.registerInfix(Lparen, p.parseCall)

	p.registerPrefix(Ident, p.parseIdentifier)
	p.registerPrefix(String, p.parseString)
	p.registerPrefix(Number, p.parseNumber)
	p.registerPrefix(Minus, p.parseNegative)
	p.registerPrefix(Keyword, p.parseKeyword)
	p.registerPrefix(Lparen, p.parseGroup)

	p.next()
	p.next()
	return &p, nil
}

// Parse reads every statement up to the end of input.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{Body: []ast.Node{}}
	p.skip(EOL)
	for !p.is(EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
		if err := p.endStatement(); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	if p.isKeyword("if") {
		return p.parseIf()
	}
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

// endStatement requires a separator (or a block terminator) after a statement.
func (p *Parser) endStatement(terminators ...string) error {
	switch {
	case p.is(EOL):
		p.skip(EOL)
	case p.is(EOF), p.isKeyword(terminators...):
	default:
		return p.unexpected("end of statement")
	}
	return nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	p.next()
	test, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	p.skip(EOL)
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Test: test}
	if stmt.Consequent, err = p.parseBlock("else", "end"); err != nil {
		return nil, err
	}
	if p.isKeyword("else") {
		p.next()
		if stmt.Alternate, err = p.parseBlock("end"); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseBlock reads statements until one of the terminator keywords, which is left
// as the current token.
func (p *Parser) parseBlock(terminators ...string) (*ast.BlockStatement, error) {
	block := &ast.BlockStatement{Body: []ast.Node{}}
	p.skip(EOL)
	for !p.isKeyword(terminators...) {
		if p.is(EOF) {
			return nil, p.unexpected(strings.Join(terminators, " or "))
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
		if err := p.endStatement(terminators...); err != nil {
			return nil, err
		}
	}
	return block, nil
}

func (p *Parser) parseExpression(pow int) (ast.Node, error) {
	prefix, ok := p.prefix[p.curr.Type]
	if !ok {
		return nil, p.unexpected("expression")
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}
	for pow < p.power() {
		infix, ok := p.infix[p.curr.Type]
		if !ok {
			break
		}
		if left, err = infix(left); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseBinary(left ast.Node) (ast.Node, error) {
	op := p.curr.Type
	p.next()
	p.skip(EOL)
	right, err := p.parseExpression(bindings[op])
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{
		Operator: operators[op],
		Left:     left,
		Right:    right,
	}, nil
}

func (p *Parser) parseDot(left ast.Node) (ast.Node, error) {
	p.next()
	if !p.is(Ident) && !p.is(Keyword) {
		return nil, p.unexpected("property name")
	}
	member := &ast.MemberExpression{
		Object:   left,
		Property: &ast.Identifier{Name: p.curr.Literal},
	}
	p.next()
	return member, nil
}

// parseCall accepts an argument list so that rules written with arguments still
// parse; the interpreter never evaluates them.
func (p *Parser) parseCall(left ast.Node) (ast.Node, error) {
	p.next()
	call := &ast.CallExpression{Callee: left, Arguments: []ast.Node{}}
	p.skip(EOL)
	for !p.is(Rparen) {
		arg, err := p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, arg)
		p.skip(EOL)
		if !p.is(Comma) {
			break
		}
		p.next()
		p.skip(EOL)
	}
	if !p.is(Rparen) {
		return nil, p.unexpected("')'")
	}
	p.next()
	return call, nil
}

func (p *Parser) parseIdentifier() (ast.Node, error) {
	id := &ast.Identifier{Name: p.curr.Literal}
	p.next()
	return id, nil
}

func (p *Parser) parseString() (ast.Node, error) {
	lit := &ast.Literal{Value: p.curr.Literal}
	p.next()
	return lit, nil
}

func (p *Parser) parseNumber() (ast.Node, error) {
	n, err := strconv.ParseFloat(p.curr.Literal, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: invalid number %q", ErrSyntax, p.curr.Position, p.curr.Literal)
	}
	p.next()
	return &ast.Literal{Value: n}, nil
}

// parseNegative folds a minus sign into the number literal that follows it.
func (p *Parser) parseNegative() (ast.Node, error) {
	p.next()
	if !p.is(Number) {
		return nil, p.unexpected("number")
	}
	n, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	lit := n.(*ast.Literal)
	lit.Value = -lit.Value.(float64)
	return lit, nil
}

func (p *Parser) parseKeyword() (ast.Node, error) {
	var lit *ast.Literal
	switch p.curr.Literal {
	case "true":
		lit = &ast.Literal{Value: true}
	case "false":
		lit = &ast.Literal{Value: false}
	case "null":
		lit = &ast.Literal{Value: nil}
	default:
		return nil, p.unexpected("expression")
	}
	p.next()
	return lit, nil
}

func (p *Parser) parseGroup() (ast.Node, error) {
	p.next()
	p.skip(EOL)
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	p.skip(EOL)
	if !p.is(Rparen) {
		return nil, p.unexpected("')'")
	}
	p.next()
	return expr, nil
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return p.unexpected(strconv.Quote(kw))
	}
	p.next()
	return nil
}

func (p *Parser) unexpected(want string) error {
	return fmt.Errorf("%w: %s: expected %s, got %s", ErrSyntax, p.curr.Position, want, p.curr)
}

func (p *Parser) registerPrefix(kind rune, fn func() (ast.Node, error)) {
	p.prefix[kind] = fn
}

func (p *Parser) registerInfix(kind rune, fn func(ast.Node) (ast.Node, error)) {
	p.infix[kind] = fn
}

func (p *Parser) power() int {
	return bindings[p.curr.Type]
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) isKeyword(names ...string) bool {
	if !p.is(Keyword) {
		return false
	}
	for _, name := range names {
		if p.curr.Literal == name {
			return true
		}
	}
	return false
}

func (p *Parser) skip(kind rune) {
	for p.is(kind) {
		p.next()
	}
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}
