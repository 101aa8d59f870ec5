package builtins

import (
	"fmt"

	"github.com/unijord/tplfuncs/pkg/value"
)

// fieldKeys names the entries of a custom field descriptor.
type fieldKeys struct {
	name  string
	kind  string
	value string
}

var (
	ffKeys      = fieldKeys{name: "ff_name", kind: "ff_coltype", value: "field_value"}
	genericKeys = fieldKeys{name: "column", kind: "type", value: "value"}
)

const dateColumn = "date"

// customFields flattens an array of field descriptors into a single
// object keyed by field name. Date columns are normalized to the
// registry date layout.
func (c *catalog) customFields(builtin string, keys fieldKeys) Impl {
	return func(args ...value.Value) (value.Value, error) {
		out := make(map[string]any)

		var descriptors []any
		switch v := args[0].(type) {
		case string:
			if v == "" {
				return out, nil
			}
			return nil, fmt.Errorf("%s: %w: expected an array, got a string", builtin, ErrFieldDescriptor)
		case []any:
			descriptors = v
		}

		for i, d := range descriptors {
			field, ok := d.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: %w: element %d is %s, not an object",
					builtin, ErrFieldDescriptor, i, value.KindOf(d))
			}
			name, ok := field[keys.name].(string)
			if !ok {
				return nil, fmt.Errorf("%s: %w: element %d has no string %q",
					builtin, ErrFieldDescriptor, i, keys.name)
			}
			val, ok := field[keys.value]
			if !ok {
				return nil, fmt.Errorf("%s: %w: element %d has no %q",
					builtin, ErrFieldDescriptor, i, keys.value)
			}
			if kind, _ := field[keys.kind].(string); kind == dateColumn {
				normalized, err := c.normalizeDate(val, "")
				if err != nil {
					return nil, fmt.Errorf("%s: field %q: %w", builtin, name, err)
				}
				val = normalized
			}
			out[name] = val
		}
		return out, nil
	}
}
