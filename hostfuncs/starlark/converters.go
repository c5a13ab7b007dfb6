package starlark

import (
	"errors"
	"fmt"
	"net/url"

	starlarkLib "go.starlark.net/starlark"
)

// toGo converts a Starlark value to plain Go data. Ints that fit in an int64 become
// int64, larger ones float64.
func toGo(v starlarkLib.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.Int:
		if i, ok := v.Int64(); ok {
			return i, nil
		}
		return float64(v.Float()), nil
	case starlarkLib.Float:
		return float64(v), nil
	case starlarkLib.String:
		return string(v), nil
	case *starlarkLib.List:
		return iterableToSlice(v, v.Len())
	case starlarkLib.Tuple:
		return iterableToSlice(v, v.Len())
	case *starlarkLib.Set:
		return iterableToSlice(v, v.Len())
	case *starlarkLib.Dict:
		dict := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			k, val := item[0], item[1]

			key, ok := k.(starlarkLib.String)
			if !ok {
				key = starlarkLib.String(k.String())
			}

			vv, err := toGo(val)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value for key %s: %w", key, err)
			}
			dict[string(key)] = vv
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported Starlark type %s", v.Type())
	}
}

func iterableToSlice(v starlarkLib.Iterable, size int) ([]any, error) {
	list := make([]any, 0, size)
	iter := v.Iterate()
	defer iter.Done()

	var elem starlarkLib.Value
	for iter.Next(&elem) {
		goVal, err := toGo(elem)
		if err != nil {
			return nil, fmt.Errorf("failed to convert list element: %w", err)
		}
		list = append(list, goVal)
	}
	return list, nil
}

// toStringDict converts host values into predeclared Starlark globals. Conversion
// errors are collected so every bad key is reported at once.
func toStringDict(inputData map[string]any) (starlarkLib.StringDict, error) {
	sDict := make(starlarkLib.StringDict, len(inputData))

	var errz []error
	for k, v := range inputData {
		starlarkVal, err := toStarlark(v)
		if err != nil {
			errz = append(errz, fmt.Errorf("failed to convert value for key %q: %w", k, err))
			continue
		}
		sDict[k] = starlarkVal
	}

	if len(errz) > 0 {
		return nil, errors.Join(errz...)
	}
	return sDict, nil
}

func toStarlark(v any) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case starlarkLib.Value:
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case *url.URL:
		return starlarkLib.String(val.String()), nil
	case []string:
		elements := make([]starlarkLib.Value, len(val))
		for i, s := range val {
			elements[i] = starlarkLib.String(s)
		}
		return starlarkLib.NewList(elements), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = toStarlark(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return starlarkLib.NewList(elements), nil
	case map[string][]string:
		dict := starlarkLib.NewDict(len(val))
		for k, values := range val {
			list, err := toStarlark(values)
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(starlarkLib.String(k), list); err != nil {
				return nil, fmt.Errorf("failed to set dict key: %w", err)
			}
		}
		return dict, nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, v := range val {
			starlarkVal, err := toStarlark(v)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			if err := dict.SetKey(starlarkLib.String(k), starlarkVal); err != nil {
				return nil, fmt.Errorf("failed to set dict key: %w", err)
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}
