package value

import "reflect"

var errorType = reflect.TypeFor[error]()

// FromGo converts a host value. Maps with string keys become *Map, slices and arrays
// *List, zero-argument functions *Func, numbers Number, and nil Null. Values that
// already implement Value pass through. Anything else is wrapped in Opaque.
func FromGo(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case int:
		return Number(v)
	case int64:
		return Number(v)
	case int32:
		return Number(v)
	case float64:
		return Number(v)
	case float32:
		return Number(v)
	case map[string]any:
		return NewMap(v)
	case []any:
		return NewList(v)
	case []byte:
		return String(v)
	case func() (Value, error):
		return &Func{fn: v, host: v, id: funcID(v)}
	case func() any:
		return &Func{
			fn:   func() (Value, error) { return FromGo(v()), nil },
			host: v,
			id:   funcID(v),
		}
	case func() (any, error):
		return &Func{
			fn: func() (Value, error) {
				out, err := v()
				if err != nil {
					return Nothing, err
				}
				return FromGo(out), nil
			},
			host: v,
			id:   funcID(v),
		}
	}
	return fromReflect(v, reflect.ValueOf(v))
}

func fromReflect(orig any, rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return &Map{rv: rv}
		}
	case reflect.Slice, reflect.Array:
		return &List{rv: rv}
	case reflect.Func:
		if rv.IsNil() {
			return Null
		}
		if fn, ok := reflectFunc(rv); ok {
			return &Func{fn: fn, host: orig, id: rv.Pointer()}
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		if elem := rv.Elem(); elem.Kind() != reflect.Struct {
			return fromReflect(orig, elem)
		}
	}
	return Opaque{V: orig}
}

// reflectFunc adapts functions taking no arguments and returning nothing, one value,
// or a value and an error.
func reflectFunc(rv reflect.Value) (func() (Value, error), bool) {
	t := rv.Type()
	if t.NumIn() != 0 && !(t.IsVariadic() && t.NumIn() == 1) {
		return nil, false
	}
	errOnly := t.NumOut() == 1 && t.Out(0) == errorType
	switch {
	case t.NumOut() <= 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return nil, false
	}

	return func() (Value, error) {
		out := rv.Call(nil)
		switch {
		case len(out) == 0:
			return Nothing, nil
		case errOnly:
			if !out[0].IsNil() {
				return Nothing, out[0].Interface().(error)
			}
			return Nothing, nil
		case len(out) == 2 && !out[1].IsNil():
			return Nothing, out[1].Interface().(error)
		}
		return FromGo(out[0].Interface()), nil
	}, true
}

func funcID(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// ToGo converts a value back into plain Go data: nil, bool, float64, string,
// map[string]any, []any, the original host function, or an opaque host value.
func ToGo(v Value) any {
	switch v := v.(type) {
	case nil, NothingType, NullType:
		return nil
	case Bool:
		return bool(v)
	case Number:
		return float64(v)
	case String:
		return string(v)
	case *Map:
		return v.Interface()
	case *List:
		return v.Interface()
	case *Func:
		return v.Interface()
	case Opaque:
		return v.V
	}
	return nil
}
