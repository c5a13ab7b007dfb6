package ast

import (
	"fmt"

	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// DecodeJSON builds a tree from ESTree-shaped JSON, the format produced by the rule
// grammar's external parser. Node kinds outside the supported set decode to *Unknown
// so the interpreter can report them; structural problems return ErrInvalidAST.
func DecodeJSON(data []byte) (Node, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAST, err)
	}
	return decodeNode(v, "$")
}

func decodeNode(v *fastjson.Value, path string) (Node, error) {
	if v == nil || v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: %s is not an object", ErrInvalidAST, path)
	}

	kind := string(v.GetStringBytes("type"))
	switch NodeType(kind) {
	case ProgramType:
		body, err := decodeList(v, "body", path)
		if err != nil {
			return nil, err
		}
		return &Program{Body: body}, nil

	case BlockStatementType:
		body, err := decodeList(v, "body", path)
		if err != nil {
			return nil, err
		}
		return &BlockStatement{Body: body}, nil

	case ExpressionStatementType:
		expr, err := decodeChild(v, "expression", path)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Expression: expr}, nil

	case BinaryExpressionType, "LogicalExpression":
		left, err := decodeChild(v, "left", path)
		if err != nil {
			return nil, err
		}
		right, err := decodeChild(v, "right", path)
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{
			Operator: string(v.GetStringBytes("operator")),
			Left:     left,
			Right:    right,
		}, nil

	case IfStatementType:
		test, err := decodeChild(v, "test", path)
		if err != nil {
			return nil, err
		}
		consequent, err := decodeChild(v, "consequent", path)
		if err != nil {
			return nil, err
		}
		stmt := &IfStatement{Test: test, Consequent: consequent}
		if alt := v.Get("alternate"); alt != nil && alt.Type() != fastjson.TypeNull {
			if stmt.Alternate, err = decodeNode(alt, path+".alternate"); err != nil {
				return nil, err
			}
		}
		return stmt, nil

	case CallExpressionType:
		callee, err := decodeChild(v, "callee", path)
		if err != nil {
			return nil, err
		}
		args, err := decodeList(v, "arguments", path)
		if err != nil {
			return nil, err
		}
		return &CallExpression{Callee: callee, Arguments: args}, nil

	case MemberExpressionType:
		if v.GetBool("computed") {
			return nil, fmt.Errorf("%w: %w at %s", ErrInvalidAST, ErrComputedMember, path)
		}
		object, err := decodeChild(v, "object", path)
		if err != nil {
			return nil, err
		}
		property, err := decodeChild(v, "property", path)
		if err != nil {
			return nil, err
		}
		return &MemberExpression{Object: object, Property: property}, nil

	case IdentifierType:
		name := v.Get("name")
		if name == nil || name.Type() != fastjson.TypeString {
			return nil, fmt.Errorf("%w: %s.name must be a string", ErrInvalidAST, path)
		}
		return &Identifier{Name: string(name.GetStringBytes())}, nil

	case LiteralType:
		val, err := decodeLiteral(v.Get("value"), path)
		if err != nil {
			return nil, err
		}
		return &Literal{Value: val}, nil

	case "":
		return nil, fmt.Errorf("%w: %s has no type", ErrInvalidAST, path)

	default:
		n := &Unknown{Kind: kind}
		if body := v.Get("body"); body != nil && body.Type() == fastjson.TypeArray {
			list, err := decodeList(v, "body", path)
			if err != nil {
				return nil, err
			}
			n.Body = list
		}
		return n, nil
	}
}

func decodeChild(v *fastjson.Value, key, path string) (Node, error) {
	child := v.Get(key)
	if child == nil || child.Type() == fastjson.TypeNull {
		return nil, fmt.Errorf("%w: %s.%s is required", ErrInvalidAST, path, key)
	}
	return decodeNode(child, path+"."+key)
}

// decodeList treats a missing key as an empty list.
func decodeList(v *fastjson.Value, key, path string) ([]Node, error) {
	field := v.Get(key)
	if field == nil || field.Type() == fastjson.TypeNull {
		return []Node{}, nil
	}
	items, err := field.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s must be an array", ErrInvalidAST, path, key)
	}

	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		n, err := decodeNode(item, fmt.Sprintf("%s.%s[%d]", path, key, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeLiteral(v *fastjson.Value, path string) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		return string(v.GetStringBytes()), nil
	case fastjson.TypeNumber:
		return v.GetFloat64(), nil
	default:
		return nil, fmt.Errorf("%w: %s.value must be a primitive, got %s", ErrInvalidAST, path, v.Type())
	}
}

// EncodeJSON renders a tree back into ESTree JSON. It is the inverse of DecodeJSON for
// every supported node kind.
func EncodeJSON(n Node) ([]byte, error) {
	var a fastjson.Arena
	v, err := encodeNode(&a, n)
	if err != nil {
		return nil, err
	}
	return v.MarshalTo(nil), nil
}

func encodeNode(a *fastjson.Arena, n Node) (*fastjson.Value, error) {
	o := a.NewObject()
	o.Set("type", a.NewString(string(n.Type())))

	switch n := n.(type) {
	case *Program:
		body, err := encodeList(a, n.Body)
		if err != nil {
			return nil, err
		}
		o.Set("body", body)
	case *BlockStatement:
		body, err := encodeList(a, n.Body)
		if err != nil {
			return nil, err
		}
		o.Set("body", body)
	case *ExpressionStatement:
		return encodeFields(a, o, field{"expression", n.Expression})
	case *BinaryExpression:
		o.Set("operator", a.NewString(n.Operator))
		return encodeFields(a, o, field{"left", n.Left}, field{"right", n.Right})
	case *IfStatement:
		if n.Alternate == nil {
			o.Set("alternate", a.NewNull())
		}
		return encodeFields(a, o,
			field{"test", n.Test},
			field{"consequent", n.Consequent},
			field{"alternate", n.Alternate},
		)
	case *CallExpression:
		args, err := encodeList(a, n.Arguments)
		if err != nil {
			return nil, err
		}
		o.Set("arguments", args)
		return encodeFields(a, o, field{"callee", n.Callee})
	case *MemberExpression:
		o.Set("computed", a.NewFalse())
		return encodeFields(a, o, field{"object", n.Object}, field{"property", n.Property})
	case *Identifier:
		o.Set("name", a.NewString(n.Name))
	case *Literal:
		lit, err := encodeLiteral(a, n.Value)
		if err != nil {
			return nil, err
		}
		o.Set("value", lit)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Type())
	}
	return o, nil
}

type field struct {
	key  string
	node Node
}

func encodeFields(a *fastjson.Arena, o *fastjson.Value, fields ...field) (*fastjson.Value, error) {
	for _, f := range fields {
		if f.node == nil {
			continue
		}
		v, err := encodeNode(a, f.node)
		if err != nil {
			return nil, err
		}
		o.Set(f.key, v)
	}
	return o, nil
}

func encodeList(a *fastjson.Arena, nodes []Node) (*fastjson.Value, error) {
	arr := a.NewArray()
	for i, n := range nodes {
		v, err := encodeNode(a, n)
		if err != nil {
			return nil, err
		}
		arr.SetArrayItem(i, v)
	}
	return arr, nil
}

func encodeLiteral(a *fastjson.Arena, val any) (*fastjson.Value, error) {
	switch v := val.(type) {
	case nil:
		return a.NewNull(), nil
	case bool:
		if v {
			return a.NewTrue(), nil
		}
		return a.NewFalse(), nil
	case string:
		return a.NewString(v), nil
	case float64:
		return a.NewNumberFloat64(v), nil
	case int:
		return a.NewNumberInt(v), nil
	default:
		return nil, fmt.Errorf("%w: literal of type %T", ErrUnsupportedNode, val)
	}
}
