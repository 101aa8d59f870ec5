package value

// Predicate classifies a Value.
type Predicate func(Value) bool

// IsNumber reports whether v is numeric. Booleans are never numbers.
func IsNumber(v Value) bool {
	return KindOf(v) == KindNumber
}

func IsString(v Value) bool {
	_, ok := v.(string)
	return ok
}

func IsStringOrArray(v Value) bool {
	switch KindOf(v) {
	case KindString, KindArray:
		return true
	}
	return false
}

// AnythingExceptArray accepts scalars and null. Arrays and objects are
// rejected.
func AnythingExceptArray(v Value) bool {
	switch KindOf(v) {
	case KindString, KindNumber, KindBool, KindNull:
		return true
	}
	return false
}

// Anything accepts every member of the domain, functions included.
func Anything(v Value) bool {
	return KindOf(v) != KindInvalid
}

func IsObject(v Value) bool {
	_, ok := v.(map[string]any)
	return ok
}

func IsArray(v Value) bool {
	_, ok := v.([]any)
	return ok
}
