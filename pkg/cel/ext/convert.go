package ext

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"

	"github.com/unijord/tplfuncs/pkg/value"
)

// ErrUnsupportedValue is returned when a CEL value has no template
// counterpart.
var ErrUnsupportedValue = errors.New("unsupported value")

// ToNative converts a CEL value to a template value.
func ToNative(v ref.Val) (value.Value, error) {
	switch x := v.(type) {
	case nil, types.Null:
		return nil, nil
	case types.Bool:
		return bool(x), nil
	case types.Int:
		return int64(x), nil
	case types.Uint:
		return value.Normalize(uint64(x))
	case types.Double:
		return float64(x), nil
	case types.String:
		return string(x), nil
	case types.Bytes:
		return string(x), nil
	case types.Timestamp:
		return x.Time.UTC().Format(time.RFC3339Nano), nil
	case types.Duration:
		return x.Duration.String(), nil
	case traits.Mapper:
		return mapToNative(x)
	case traits.Lister:
		return listToNative(x)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type().TypeName())
}

func listToNative(l traits.Lister) (value.Value, error) {
	out := make([]any, 0, int(l.Size().(types.Int)))
	it := l.Iterator()
	for it.HasNext() == types.True {
		e, err := ToNative(it.Next())
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func mapToNative(m traits.Mapper) (value.Value, error) {
	out := make(map[string]any, int(m.Size().(types.Int)))
	it := m.Iterator()
	for it.HasNext() == types.True {
		k := it.Next()
		key, ok := k.(types.String)
		if !ok {
			return nil, fmt.Errorf("%w: map key of type %s", ErrUnsupportedValue, k.Type().TypeName())
		}
		e, err := ToNative(m.Get(k))
		if err != nil {
			return nil, err
		}
		out[string(key)] = e
	}
	return out, nil
}

// FromNative converts a template value to a CEL value.
func FromNative(v value.Value) ref.Val {
	if value.KindOf(v) == value.KindFunction {
		return types.NewErr("functions cannot be returned to CEL")
	}
	return types.DefaultTypeAdapter.NativeToValue(v)
}
