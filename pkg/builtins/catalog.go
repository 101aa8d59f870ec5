package builtins

import (
	"time"

	"github.com/unijord/tplfuncs/pkg/value"
)

type entry struct {
	name   string
	policy Policy
	impl   Impl
}

// catalog carries the per-context state a few builtins close over.
type catalog struct {
	now    time.Time
	clock  func() time.Time
	layout string
}

func (c *catalog) entries() []entry {
	return []entry{
		// math
		{"min", Variadic(value.IsNumber, 1), execMin},
		{"max", Variadic(value.IsNumber, 1), execMax},
		{"sqrt", Fixed(value.IsNumber), execSqrt},
		{"abs", Fixed(value.IsNumber), execAbs},
		{"ceil", Fixed(value.IsNumber), execCeil},
		{"floor", Fixed(value.IsNumber), execFloor},
		{"int", Unchecked(1, 2), execInt},
		{"multiply_number", Unchecked(2, 2), execMultiply},
		{"divide_number", Unchecked(2, 2), execDivide},

		// strings
		{"lowercase", Fixed(value.IsString), execLowercase},
		{"uppercase", Fixed(value.IsString), execUppercase},
		{"len", Fixed(value.IsStringOrArray), execLen},
		{"str", Fixed(value.AnythingExceptArray), execStr},
		{"strip", Fixed(value.IsString), execStrip},
		{"lstrip", Fixed(value.IsString), execLstrip},
		{"rstrip", Fixed(value.IsString), execRstrip},

		// types and objects
		{"typeof", Fixed(value.Anything), execTypeOf},
		{"get", Unchecked(2, 2), execGet},
		{"only_one_key_present", Unchecked(2, 2), execOnlyOneKeyPresent},
		{"required_value", Unchecked(1, 1), execRequiredValue},

		// custom fields
		{"custom_fields", Fixed(value.IsStringOrArray), c.customFields("custom_fields", ffKeys)},
		{"custom_fields_generic", Fixed(value.IsStringOrArray), c.customFields("custom_fields_generic", genericKeys)},

		// dates
		{"fromNow", Variadic(value.IsString, 1), c.fromNow},
		{"calculate_chrs", Unchecked(2, 2), execCalculateChrs},
		{"iso_to_utc", Unchecked(1, 2), c.isoToUTC},
		{"iso_to_epoch", Unchecked(1, 1), execIsoToEpoch},
	}
}
