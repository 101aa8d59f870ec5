package hclfuncs

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/zclconf/go-cty/cty"

	"github.com/unijord/tplfuncs/pkg/value"
)

var (
	// ErrUnsupportedValue is returned for values with no counterpart on
	// the other side of the conversion.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnknownValue is returned when a cty value is not yet known.
	ErrUnknownValue = errors.New("value is unknown")
)

// ToCty converts a template value to a cty value. Arrays become tuples and
// objects become object values, so heterogeneous elements are kept.
func ToCty(v value.Value) (cty.Value, error) {
	n, err := value.Normalize(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
	}

	switch x := n.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(x), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		if math.IsNaN(x) {
			return cty.NilVal, fmt.Errorf("%w: NaN", ErrUnsupportedValue)
		}
		return cty.NumberFloatVal(x), nil
	case string:
		return cty.StringVal(x), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(x))
		for i, e := range x {
			cv, err := ToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = cv
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, e := range x {
			cv, err := ToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("attribute %q: %w", k, err)
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("%w: %s", ErrUnsupportedValue, value.KindOf(n))
}

// FromCty converts a cty value to a template value. Whole numbers that fit
// an int64 become int64, every other number becomes float64.
func FromCty(v cty.Value) (value.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, ErrUnknownValue
	}
	v, _ = v.UnmarkDeep()

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		return fromNumber(v.AsBigFloat()), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			nv, err := FromCty(e)
			if err != nil {
				return nil, err
			}
			out = append(out, nv)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, e := it.Element()
			nv, err := FromCty(e)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", k.AsString(), err)
			}
			out[k.AsString()] = nv
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, ty.FriendlyName())
}

func fromNumber(bf *big.Float) value.Value {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
	}
	f, _ := bf.Float64()
	return f
}
