package builtins

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/unijord/tplfuncs/pkg/value"
)

func execMin(args ...value.Value) (value.Value, error) {
	return extreme(args, func(a, b float64) bool { return a < b }), nil
}

func execMax(args ...value.Value) (value.Value, error) {
	return extreme(args, func(a, b float64) bool { return a > b }), nil
}

// extreme returns the first argument that wins every comparison, keeping
// its int or float type.
func extreme(args []value.Value, better func(a, b float64) bool) value.Value {
	var (
		res  value.Value
		best float64
	)
	for i := range args {
		f, _ := value.AsFloat(args[i])
		if i == 0 || better(f, best) {
			res, best = args[i], f
		}
	}
	return res
}

func execSqrt(args ...value.Value) (value.Value, error) {
	f, _ := value.AsFloat(args[0])
	if f < 0 {
		return nil, fmt.Errorf("sqrt: %w", ErrDomain)
	}
	return math.Sqrt(f), nil
}

func execAbs(args ...value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case int64:
		if v == math.MinInt64 {
			return nil, overflow("abs")
		}
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case float64:
		return math.Abs(v), nil
	}
	return nil, badArguments("abs")
}

func execCeil(args ...value.Value) (value.Value, error) {
	return roundWith("ceil", args[0], math.Ceil)
}

func execFloor(args ...value.Value) (value.Value, error) {
	return roundWith("floor", args[0], math.Floor)
}

func roundWith(name string, v value.Value, round func(float64) float64) (value.Value, error) {
	if i, ok := v.(int64); ok {
		return i, nil
	}
	f, _ := value.AsFloat(v)
	return truncate(name, round(f))
}

func overflow(name string) error {
	return fmt.Errorf("%s: %w: integer overflow", name, ErrConversion)
}

// mulInt64 reports false when x*y does not fit an int64.
func mulInt64(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	p := x * y
	if p/y != x {
		return 0, false
	}
	return p, true
}

// truncate converts f to int64, rounding toward zero.
func truncate(name string, f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%s: %w: %s cannot be represented as an integer", name, ErrConversion, value.FormatFloat(f))
	}
	return int64(f), nil
}

func execInt(args ...value.Value) (value.Value, error) {
	if err := arity("int", args, 1, 2); err != nil {
		return nil, err
	}
	base := 10
	if len(args) == 2 {
		b, ok := args[1].(int64)
		if !ok {
			return nil, badArguments("int")
		}
		if _, isString := args[0].(string); !isString {
			return nil, fmt.Errorf("int: %w: explicit base requires a string", ErrConversion)
		}
		base = int(b)
	}
	switch v := args[0].(type) {
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case int64:
		return v, nil
	case float64:
		return truncate("int", v)
	case string:
		return parseInt(v, base)
	}
	return nil, fmt.Errorf("int: %w: cannot convert %s", ErrConversion, value.KindOf(args[0]))
}

var basePrefixes = map[string]int{"0x": 16, "0o": 8, "0b": 2}

// parseInt reads s the way Python's int(s, base) does: surrounding
// whitespace, an optional sign, a 0x/0o/0b prefix matching base (base 0
// infers it, defaulting to 10) and single underscores between digits.
func parseInt(s string, base int) (value.Value, error) {
	bad := func() (value.Value, error) {
		return nil, fmt.Errorf("int: %w: %q is not an integer in base %d", ErrConversion, s, base)
	}

	text := strings.TrimSpace(s)
	sign := ""
	if text != "" && (text[0] == '-' || text[0] == '+') {
		sign, text = text[:1], text[1:]
	}

	prefixed := false
	if len(text) > 2 {
		if pb, ok := basePrefixes[strings.ToLower(text[:2])]; ok && (base == 0 || base == pb) {
			base, text, prefixed = pb, text[2:], true
		}
	}
	if base == 0 {
		base = 10
	}
	// A single underscore may follow the prefix.
	if prefixed && strings.HasPrefix(text, "_") {
		text = text[1:]
	}
	if text == "" || text[0] == '_' || text[len(text)-1] == '_' || strings.Contains(text, "__") {
		return bad()
	}

	i, err := strconv.ParseInt(sign+strings.ReplaceAll(text, "_", ""), base, 64)
	if err != nil {
		return bad()
	}
	return i, nil
}

func numericPair(name string, args []value.Value) (float64, float64, error) {
	a, ok := value.AsFloat(args[0])
	if !ok {
		return 0, 0, badArguments(name)
	}
	b, ok := value.AsFloat(args[1])
	if !ok {
		return 0, 0, badArguments(name)
	}
	return a, b, nil
}

func execMultiply(args ...value.Value) (value.Value, error) {
	if err := arity("multiply_number", args, 2, 2); err != nil {
		return nil, err
	}
	if x, ok := args[0].(int64); ok {
		if y, ok := args[1].(int64); ok {
			p, ok := mulInt64(x, y)
			if !ok {
				return nil, overflow("multiply_number")
			}
			return p, nil
		}
	}
	a, b, err := numericPair("multiply_number", args)
	if err != nil {
		return nil, err
	}
	return truncate("multiply_number", a*b)
}

func execDivide(args ...value.Value) (value.Value, error) {
	if err := arity("divide_number", args, 2, 2); err != nil {
		return nil, err
	}
	if args[0] == nil {
		return nil, nil
	}
	if args[1] == nil {
		return nil, fmt.Errorf("divide_number: %w", ErrDivisionByZero)
	}
	if x, ok := args[0].(int64); ok {
		if y, ok := args[1].(int64); ok {
			if y == 0 {
				return nil, fmt.Errorf("divide_number: %w", ErrDivisionByZero)
			}
			if x == math.MinInt64 && y == -1 {
				return nil, overflow("divide_number")
			}
			return x / y, nil
		}
	}
	a, b, err := numericPair("divide_number", args)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, fmt.Errorf("divide_number: %w", ErrDivisionByZero)
	}
	return truncate("divide_number", a/b)
}
