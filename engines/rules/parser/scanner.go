package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

var keywords = map[string]bool{
	"if":    true,
	"then":  true,
	"else":  true,
	"end":   true,
	"true":  true,
	"false": true,
	"null":  true,
}

const (
	EOF rune = -(iota + 1)
	EOL
	Ident
	Keyword
	String
	Number
	Dot
	Comma
	Lparen
	Rparen
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Minus
	Invalid
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Type    rune
	Literal string
	Position
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<eof>"
	case EOL:
		return "<eol>"
	case Dot:
		return "<dot>"
	case Comma:
		return "<comma>"
	case Lparen:
		return "<lparen>"
	case Rparen:
		return "<rparen>"
	case Eq:
		return "<eq>"
	case Ne:
		return "<ne>"
	case Lt:
		return "<lt>"
	case Le:
		return "<le>"
	case Gt:
		return "<gt>"
	case Ge:
		return "<ge>"
	case And:
		return "<and>"
	case Or:
		return "<or>"
	case Minus:
		return "<minus>"
	case Keyword:
		return fmt.Sprintf("keyword(%s)", t.Literal)
	case Ident:
		return fmt.Sprintf("identifier(%s)", t.Literal)
	case String:
		return fmt.Sprintf("string(%s)", t.Literal)
	case Number:
		return fmt.Sprintf("number(%s)", t.Literal)
	case Invalid:
		return fmt.Sprintf("invalid(%s)", t.Literal)
	default:
		return "unknown"
	}
}

// Scanner splits rule source into tokens. Newlines and semicolons both produce EOL;
// '#' starts a comment running to the end of the line.
type Scanner struct {
	input []rune
	pos   int
	Position
}

func Scan(r io.Reader) (*Scanner, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src := strings.TrimPrefix(string(buf), "\ufeff")
	return &Scanner{
		input:    []rune(src),
		Position: Position{Line: 1, Column: 1},
	}, nil
}

func (s *Scanner) Scan() Token {
	s.skipBlank()

	tok := Token{Position: s.Position}
	if s.done() {
		tok.Type = EOF
		return tok
	}

	ch := s.read()
	switch {
	case ch == '\n' || ch == ';':
		tok.Type = EOL
		tok.Literal = string(ch)
	case isLetter(ch):
		tok.Literal = s.scanWhile(ch, isIdent)
		tok.Type = Ident
		if keywords[tok.Literal] {
			tok.Type = Keyword
		}
	case isDigit(ch):
		tok.Type, tok.Literal = s.scanNumber(ch)
	case ch == '"' || ch == '\'':
		tok.Type, tok.Literal = s.scanString(ch)
	case ch == '.':
		tok.Type = Dot
	case ch == ',':
		tok.Type = Comma
	case ch == '(':
		tok.Type = Lparen
	case ch == ')':
		tok.Type = Rparen
	case ch == '-':
		tok.Type = Minus
	case ch == '=' && s.accept('='):
		s.accept('=')
		tok.Type = Eq
	case ch == '!' && s.accept('='):
		s.accept('=')
		tok.Type = Ne
	case ch == '<':
		tok.Type = Lt
		if s.accept('=') {
			tok.Type = Le
		}
	case ch == '>':
		tok.Type = Gt
		if s.accept('=') {
			tok.Type = Ge
		}
	case ch == '&' && s.accept('&'):
		tok.Type = And
	case ch == '|' && s.accept('|'):
		tok.Type = Or
	default:
		tok.Type = Invalid
		tok.Literal = string(ch)
	}
	return tok
}

func (s *Scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) peek() rune {
	if s.done() {
		return 0
	}
	return s.input[s.pos]
}

func (s *Scanner) read() rune {
	ch := s.input[s.pos]
	s.pos++
	if ch == '\n' {
		s.Line++
		s.Column = 1
	} else {
		s.Column++
	}
	return ch
}

func (s *Scanner) accept(want rune) bool {
	if s.done() || s.peek() != want {
		return false
	}
	s.read()
	return true
}

func (s *Scanner) skipBlank() {
	for !s.done() {
		switch ch := s.peek(); {
		case ch == '#':
			for !s.done() && s.peek() != '\n' {
				s.read()
			}
		case ch != '\n' && unicode.IsSpace(ch):
			s.read()
		default:
			return
		}
	}
}

func (s *Scanner) scanWhile(first rune, accept func(rune) bool) string {
	var sb strings.Builder
	sb.WriteRune(first)
	for !s.done() && accept(s.peek()) {
		sb.WriteRune(s.read())
	}
	return sb.String()
}

func (s *Scanner) scanNumber(first rune) (rune, string) {
	lit := s.scanWhile(first, isDigit)
	if s.peek() == '.' && s.pos+1 < len(s.input) && isDigit(s.input[s.pos+1]) {
		s.read()
		lit += "." + s.scanWhile(s.read(), isDigit)
	}
	if ch := s.peek(); ch == 'e' || ch == 'E' {
		exp := string(s.read())
		if ch := s.peek(); ch == '+' || ch == '-' {
			exp += string(s.read())
		}
		if !isDigit(s.peek()) {
			return Invalid, lit + exp
		}
		lit += exp + s.scanWhile(s.read(), isDigit)
	}
	return Number, lit
}

func (s *Scanner) scanString(quote rune) (rune, string) {
	var sb strings.Builder
	for !s.done() {
		ch := s.read()
		switch ch {
		case quote:
			return String, sb.String()
		case '\n':
			return Invalid, "unterminated string"
		case '\\':
			if s.done() {
				return Invalid, "unterminated string"
			}
			sb.WriteRune(unescape(s.read()))
		default:
			sb.WriteRune(ch)
		}
	}
	return Invalid, "unterminated string"
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return ch
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdent(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}
