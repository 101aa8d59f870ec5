package value

import (
	"math"
	"strconv"
	"strings"
)

// TypeOf returns the template type name of v, or nil for null and for
// values outside the domain.
func TypeOf(v Value) Value {
	switch k := KindOf(v); k {
	case KindNull, KindInvalid:
		return nil
	default:
		return k.String()
	}
}

// ToString renders v with the canonical template string conversion:
// booleans as true/false, null as "null", arrays joined with ",".
func ToString(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return FormatFloat(x)
	case []any:
		parts := make([]string, len(x))
		for i := range x {
			parts[i] = ToString(x[i])
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	case Func:
		return "<function>"
	}
	n, err := Normalize(v)
	if err != nil {
		return "<invalid>"
	}
	switch KindOf(n) {
	case KindNumber, KindFunction:
		return ToString(n)
	}
	return "<invalid>"
}

// FormatFloat renders f the way the template language prints floats:
// integral values keep a trailing ".0", very large or very small
// magnitudes switch to exponent notation.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
