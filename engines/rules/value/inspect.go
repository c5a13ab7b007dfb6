package value

import (
	"fmt"
	"strconv"
	"strings"
)

const maxInspectDepth = 16

// Inspect renders v in a JSON-like form for diagnostics.
func Inspect(v Value) string {
	var sb strings.Builder
	inspect(&sb, v, 0)
	return sb.String()
}

func inspect(sb *strings.Builder, v Value, depth int) {
	if depth > maxInspectDepth {
		sb.WriteString("...")
		return
	}

	switch v := v.(type) {
	case nil, NothingType:
		sb.WriteString("undefined")
	case NullType:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(v.String())
	case Number:
		sb.WriteString(v.String())
	case String:
		sb.WriteString(strconv.Quote(string(v)))
	case *List:
		sb.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				sb.WriteByte(',')
			}
			inspect(sb, item, depth+1)
		}
		sb.WriteByte(']')
	case Mapping:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			member, _ := v.Get(k)
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			inspect(sb, member, depth+1)
		}
		sb.WriteByte('}')
	case Callable:
		sb.WriteString("[function]")
	case Opaque:
		fmt.Fprintf(sb, "%v", v.V)
	}
}
