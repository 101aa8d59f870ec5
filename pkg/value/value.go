// Package value defines the dynamic data domain shared by templates and
// builtins.
//
// A Value is one of:
//
//	nil             null
//	bool            boolean
//	int64, float64  number
//	string          string
//	[]any           array
//	map[string]any  object
//	Func            function
//
// Values coming from outside the domain (decoded JSON, Go literals in
// tests) should pass through Normalize first so that every number is
// either int64 or float64.
package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// Value is any member of the template data domain.
type Value = any

// Func is the callable member of the domain.
type Func func(args ...Value) (Value, error)

// Kind tags the dynamic type of a Value.
type Kind int8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return "invalid"
	}
}

// KindOf classifies v. Booleans are matched before numbers.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64, float64, int, int8, int16, int32, uint, uint8, uint16, uint32, uint64, float32, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case Func, func(...Value) (Value, error):
		return KindFunction
	default:
		return KindInvalid
	}
}

// Normalize converts Go numeric kinds and json.Number to int64/float64,
// recursing into arrays and objects. Other values are returned as is.
func Normalize(v Value) (Value, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint:
		return uintToValue(uint64(x)), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return uintToValue(x), nil
	case float32:
		return float64(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("normalize number %q: %w", x.String(), err)
		}
		return f, nil
	case func(...Value) (Value, error):
		return Func(x), nil
	case []any:
		out := make([]any, len(x))
		for i := range x {
			n, err := Normalize(x[i])
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			n, err := Normalize(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

func uintToValue(u uint64) Value {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

// AsFloat returns the numeric value of v as float64.
func AsFloat(v Value) (float64, bool) {
	if KindOf(v) != KindNumber {
		return 0, false
	}
	n, err := Normalize(v)
	if err != nil {
		return 0, false
	}
	switch x := n.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
