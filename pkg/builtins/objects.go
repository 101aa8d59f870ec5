package builtins

import (
	"fmt"

	"github.com/unijord/tplfuncs/pkg/value"
)

func execTypeOf(args ...value.Value) (value.Value, error) {
	return value.TypeOf(args[0]), nil
}

// execGet never fails: a missing key, an out of range index or a value
// that cannot be indexed all yield null.
func execGet(args ...value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, nil
	}
	switch obj := args[0].(type) {
	case map[string]any:
		key, ok := args[1].(string)
		if !ok {
			return nil, nil
		}
		return obj[key], nil
	case []any:
		idx, ok := args[1].(int64)
		if !ok {
			return nil, nil
		}
		if idx < 0 {
			idx += int64(len(obj))
		}
		if idx < 0 || idx >= int64(len(obj)) {
			return nil, nil
		}
		return obj[idx], nil
	}
	return nil, nil
}

// execOnlyOneKeyPresent never fails; malformed input yields false.
func execOnlyOneKeyPresent(args ...value.Value) (value.Value, error) {
	if len(args) != 2 {
		return false, nil
	}
	obj, ok := args[0].(map[string]any)
	if !ok || len(obj) != 1 {
		return false, nil
	}
	key, ok := args[1].(string)
	if !ok {
		return false, nil
	}
	_, found := obj[key]
	return found, nil
}

func execRequiredValue(args ...value.Value) (value.Value, error) {
	if err := arity("required_value", args, 1, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case nil:
		return nil, fmt.Errorf("required_value: %w", ErrRequiredValue)
	case string:
		if v == "" {
			return nil, fmt.Errorf("required_value: %w", ErrRequiredValue)
		}
	}
	return args[0], nil
}
