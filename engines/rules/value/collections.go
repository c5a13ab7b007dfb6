package value

import (
	"reflect"
	"slices"
	"strconv"
)

var anyMapType = reflect.TypeFor[map[string]any]()

// Map is a lazy, read-only view over a host map with string keys. Members are
// converted on access, so the host map is never copied or written.
type Map struct {
	rv reflect.Value
}

// NewMap wraps a host map. A nil map behaves as an empty one.
func NewMap(m map[string]any) *Map {
	if m == nil {
		m = map[string]any{}
	}
	return &Map{rv: reflect.ValueOf(m)}
}

// MapOf wraps a map of already converted values.
func MapOf(m map[string]Value) *Map {
	if m == nil {
		m = map[string]Value{}
	}
	return &Map{rv: reflect.ValueOf(m)}
}

func (*Map) Kind() Kind { return MapKind }
func (*Map) value()     {}

func (m *Map) lookup(key string) reflect.Value {
	if !m.rv.IsValid() || m.rv.IsNil() {
		return reflect.Value{}
	}
	k := reflect.ValueOf(key).Convert(m.rv.Type().Key())
	return m.rv.MapIndex(k)
}

func (m *Map) Has(key string) bool {
	return m.lookup(key).IsValid()
}

func (m *Map) Get(key string) (Value, bool) {
	v := m.lookup(key)
	if !v.IsValid() {
		return Nothing, false
	}
	return FromGo(v.Interface()), true
}

// Keys returns the member names in sorted order.
func (m *Map) Keys() []string {
	if !m.rv.IsValid() {
		return nil
	}
	keys := make([]string, 0, m.rv.Len())
	for _, k := range m.rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	return keys
}

func (m *Map) Len() int {
	if !m.rv.IsValid() {
		return 0
	}
	return m.rv.Len()
}

// Interface returns the wrapped host map when it is a map[string]any, otherwise a
// converted copy.
func (m *Map) Interface() map[string]any {
	if m.rv.IsValid() && m.rv.Type() == anyMapType {
		return m.rv.Interface().(map[string]any)
	}
	return materialize(m)
}

func (m *Map) identity() uintptr {
	if !m.rv.IsValid() {
		return 0
	}
	return uintptr(m.rv.UnsafePointer())
}

// List is a read-only view over a host slice or array. Its members are the decimal
// indexes plus "length".
type List struct {
	rv reflect.Value
}

func NewList(items []any) *List {
	return &List{rv: reflect.ValueOf(items)}
}

func (*List) Kind() Kind { return ListKind }
func (*List) value()     {}

func (l *List) Len() int {
	if !l.rv.IsValid() {
		return 0
	}
	return l.rv.Len()
}

func (l *List) index(key string) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= l.Len() || strconv.Itoa(i) != key {
		return 0, false
	}
	return i, true
}

func (l *List) Has(key string) bool {
	if key == "length" {
		return true
	}
	_, ok := l.index(key)
	return ok
}

func (l *List) Get(key string) (Value, bool) {
	if key == "length" {
		return Number(l.Len()), true
	}
	i, ok := l.index(key)
	if !ok {
		return Nothing, false
	}
	return FromGo(l.rv.Index(i).Interface()), true
}

func (l *List) Keys() []string {
	keys := make([]string, l.Len())
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// Items returns the converted elements.
func (l *List) Items() []Value {
	items := make([]Value, l.Len())
	for i := range items {
		items[i] = FromGo(l.rv.Index(i).Interface())
	}
	return items
}

func (l *List) Interface() []any {
	out := make([]any, l.Len())
	for i, item := range l.Items() {
		out[i] = ToGo(item)
	}
	return out
}

// identity is zero for arrays, which are values and never share identity.
func (l *List) identity() uintptr {
	if !l.rv.IsValid() || l.rv.Kind() != reflect.Slice {
		return 0
	}
	return uintptr(l.rv.UnsafePointer())
}

// Func is a zero-argument host function.
type Func struct {
	fn   func() (Value, error)
	host any
	id   uintptr
}

// NewFunc builds a callable from a function already speaking the value model.
func NewFunc(fn func() (Value, error)) *Func {
	return &Func{fn: fn}
}

func (*Func) Kind() Kind { return FunctionKind }
func (*Func) value()     {}

func (f *Func) Call() (Value, error) {
	v, err := f.fn()
	if v == nil {
		v = Nothing
	}
	return v, err
}

// Interface returns the original host function when there is one.
func (f *Func) Interface() any {
	if f.host != nil {
		return f.host
	}
	return f.fn
}

func (f *Func) same(other *Func) bool {
	if f.id != 0 || other.id != 0 {
		return f.id == other.id
	}
	return f == other
}

func materialize(m Mapping) map[string]any {
	out := make(map[string]any)
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out[k] = ToGo(v)
	}
	return out
}
