// Package value is the runtime value model for rules: primitives, mappings, and
// zero-argument callables. Host data enters through FromGo and leaves through ToGo.
package value

import (
	"math"
	"strconv"
)

// Kind names a value variant.
type Kind string

const (
	NothingKind  Kind = "nothing"
	NullKind     Kind = "null"
	BoolKind     Kind = "bool"
	NumberKind   Kind = "number"
	StringKind   Kind = "string"
	MapKind      Kind = "map"
	ListKind     Kind = "list"
	FunctionKind Kind = "function"
	OpaqueKind   Kind = "opaque"
)

// Value is implemented only by the types in this package.
type Value interface {
	Kind() Kind
	value()
}

// Mapping is a value with named members reachable through dotted access.
type Mapping interface {
	Value
	Has(key string) bool
	Get(key string) (Value, bool)
	Keys() []string
}

// Callable is a host function invoked with no arguments.
type Callable interface {
	Value
	Call() (Value, error)
}

// NothingType is the absent value: a missing key, an if without a taken branch, or a
// failed evaluation.
type NothingType struct{}

// NullType is an explicit nil supplied by the host or a null literal.
type NullType struct{}

var (
	Nothing = NothingType{}
	Null    = NullType{}
)

type (
	Bool   bool
	Number float64
	String string
)

// Opaque carries a host value with no rule-level representation. It is truthy and
// has no members.
type Opaque struct {
	V any
}

func (NothingType) Kind() Kind { return NothingKind }
func (NullType) Kind() Kind    { return NullKind }
func (Bool) Kind() Kind        { return BoolKind }
func (Number) Kind() Kind      { return NumberKind }
func (String) Kind() Kind      { return StringKind }
func (Opaque) Kind() Kind      { return OpaqueKind }

func (NothingType) value() {}
func (NullType) value()    {}
func (Bool) value()        {}
func (Number) value()      {}
func (String) value()      {}
func (Opaque) value()      {}

func (NothingType) String() string { return "undefined" }
func (NullType) String() string    { return "null" }
func (b Bool) String() string      { return strconv.FormatBool(bool(b)) }
func (n Number) String() string    { return formatNumber(float64(n)) }
func (s String) String() string    { return string(s) }

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func IsNothing(v Value) bool {
	_, ok := v.(NothingType)
	return v == nil || ok
}

func IsString(v Value) bool {
	_, ok := v.(String)
	return ok
}

func IsMapping(v Value) bool {
	_, ok := v.(Mapping)
	return ok
}

func IsCallable(v Value) bool {
	_, ok := v.(Callable)
	return ok
}

// Truthy reports whether a condition treats v as true. false, 0, NaN, the empty
// string, null and nothing are falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, NothingType, NullType:
		return false
	case Bool:
		return bool(v)
	case Number:
		return v != 0 && !math.IsNaN(float64(v))
	case String:
		return v != ""
	default:
		return true
	}
}

// ToKey renders a property value as the member name used for lookup.
func ToKey(v Value) string {
	switch v := v.(type) {
	case nil:
		return "undefined"
	case NothingType:
		return v.String()
	case NullType:
		return v.String()
	case Bool:
		return v.String()
	case Number:
		return v.String()
	case String:
		return string(v)
	default:
		return Inspect(v)
	}
}
