package value

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// StrictEqual reports whether a and b are the same variant holding the same value.
// Mappings and functions are equal only to themselves. NaN is not equal to itself.
func StrictEqual(a, b Value) bool {
	if a == nil {
		a = Nothing
	}
	if b == nil {
		b = Nothing
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a := a.(type) {
	case NothingType, NullType:
		return true
	case Bool:
		return a == b.(Bool)
	case Number:
		return a == b.(Number)
	case String:
		return a == b.(String)
	case *Map:
		other := b.(*Map)
		return a == other || a.identity() != 0 && a.identity() == other.identity()
	case *List:
		other := b.(*List)
		return a == other || a.identity() != 0 && a.identity() == other.identity() && a.Len() == other.Len()
	case *Func:
		return a.same(b.(*Func))
	case Opaque:
		other := b.(Opaque)
		if a.V == nil || other.V == nil {
			return a.V == other.V
		}
		ta, tb := reflect.TypeOf(a.V), reflect.TypeOf(other.V)
		return ta == tb && ta.Comparable() && a.V == other.V
	}
	return false
}

// Compare orders a and b. Two strings compare lexicographically; any other pair is
// compared numerically after ToNumber. ok is false when the pair is unordered, which
// happens whenever either side converts to NaN.
func Compare(a, b Value) (cmp int, ok bool) {
	if sa, isStr := a.(String); isStr {
		if sb, isStr := b.(String); isStr {
			return strings.Compare(string(sa), string(sb)), true
		}
	}

	x, y := ToNumber(a), ToNumber(b)
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return 0, false
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	}
	return 0, true
}

// ToNumber coerces a value for relational comparison: booleans are 0 or 1, null is
// 0, numeric strings parse, blank strings are 0, and everything else is NaN.
func ToNumber(v Value) float64 {
	switch v := v.(type) {
	case Number:
		return float64(v)
	case Bool:
		if v {
			return 1
		}
		return 0
	case NullType:
		return 0
	case String:
		s := strings.TrimSpace(string(v))
		if s == "" {
			return 0
		}
		return parseNumeric(s)
	}
	return math.NaN()
}

// parseNumeric accepts decimal literals, unsigned 0x/0o/0b integers, and the exact
// spellings Infinity, +Infinity and -Infinity. strconv also takes "inf", "nan" and hex
// floats, which are not numeric strings here.
func parseNumeric(s string) float64 {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil || strings.Contains(s, "_") {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if strings.ContainsAny(s, "iInNxXpP_") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
