package extism

import (
	"fmt"

	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// decodeOutput parses export output as JSON. Output that is not JSON is returned as a
// string.
func decodeOutput(output []byte) any {
	if len(output) == 0 {
		return nil
	}

	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(output)
	if err != nil {
		return string(output)
	}
	return fromJSON(v)
}

func fromJSON(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		out := make(map[string]any, obj.Len())
		obj.Visit(func(key []byte, item *fastjson.Value) {
			out[string(key)] = fromJSON(item)
		})
		return out
	case fastjson.TypeArray:
		items, _ := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = fromJSON(item)
		}
		return out
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}

// encodeInput renders host data as the JSON input passed to every export.
func encodeInput(input map[string]any) ([]byte, error) {
	if len(input) == 0 {
		return nil, nil
	}
	var a fastjson.Arena
	v, err := toJSON(&a, input)
	if err != nil {
		return nil, err
	}
	return v.MarshalTo(nil), nil
}

func toJSON(a *fastjson.Arena, val any) (*fastjson.Value, error) {
	switch val := val.(type) {
	case nil:
		return a.NewNull(), nil
	case bool:
		if val {
			return a.NewTrue(), nil
		}
		return a.NewFalse(), nil
	case string:
		return a.NewString(val), nil
	case int:
		return a.NewNumberInt(val), nil
	case int64:
		return a.NewNumberFloat64(float64(val)), nil
	case float64:
		return a.NewNumberFloat64(val), nil
	case []string:
		arr := a.NewArray()
		for i, s := range val {
			arr.SetArrayItem(i, a.NewString(s))
		}
		return arr, nil
	case []any:
		arr := a.NewArray()
		for i, item := range val {
			v, err := toJSON(a, item)
			if err != nil {
				return nil, err
			}
			arr.SetArrayItem(i, v)
		}
		return arr, nil
	case map[string]any:
		obj := a.NewObject()
		for k, item := range val {
			v, err := toJSON(a, item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			obj.Set(k, v)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported input type %T", val)
	}
}
