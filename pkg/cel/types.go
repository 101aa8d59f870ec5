package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/unijord/tplfuncs/pkg/value"
)

// ExprType is the statically checked result type of an expression,
// expressed in template kinds. Builtin calls are always ExprTypeDyn.
type ExprType int

const (
	ExprTypeUnknown ExprType = iota
	ExprTypeBool
	ExprTypeInt
	ExprTypeDouble
	// ExprTypeString covers CEL strings and the values rendered as
	// strings on the way out: bytes, timestamps and durations.
	ExprTypeString
	ExprTypeList
	ExprTypeMap
	ExprTypeDyn
	ExprTypeNull
)

var exprTypeNames = [...]string{
	ExprTypeUnknown: "unknown",
	ExprTypeBool:    "bool",
	ExprTypeInt:     "int",
	ExprTypeDouble:  "double",
	ExprTypeString:  "string",
	ExprTypeList:    "list",
	ExprTypeMap:     "map",
	ExprTypeDyn:     "dyn",
	ExprTypeNull:    "null",
}

func (t ExprType) String() string {
	if t < 0 || int(t) >= len(exprTypeNames) {
		return "unknown"
	}
	return exprTypeNames[t]
}

// CompiledExpr is a checked program ready for evaluation.
type CompiledExpr struct {
	source     string
	program    cel.Program
	outputType ExprType
}

func (c *CompiledExpr) Source() string       { return c.source }
func (c *CompiledExpr) OutputType() ExprType { return c.outputType }

// EvalResult holds a template value or the error that prevented one.
type EvalResult struct {
	value value.Value
	typ   ExprType
	err   error
}

func NewEvalResult(v value.Value, typ ExprType) EvalResult {
	return EvalResult{value: v, typ: typ}
}

func NewEvalError(err error) EvalResult {
	return EvalResult{err: err}
}

func (r EvalResult) Value() value.Value { return r.value }
func (r EvalResult) Type() ExprType     { return r.typ }
func (r EvalResult) Err() error         { return r.err }
func (r EvalResult) Ok() bool           { return r.err == nil }

// Kind is the template kind of the value, KindInvalid after an error.
func (r EvalResult) Kind() value.Kind {
	if r.err != nil {
		return value.KindInvalid
	}
	return value.KindOf(r.value)
}

func (r EvalResult) mismatch(want string) error {
	return fmt.Errorf("expected %s, got %s", want, value.KindOf(r.value))
}

func (r EvalResult) Int() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if i, ok := r.value.(int64); ok {
		return i, nil
	}
	return 0, r.mismatch("integer")
}

// Number returns any numeric result as float64.
func (r EvalResult) Number() (float64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if f, ok := value.AsFloat(r.value); ok {
		return f, nil
	}
	return 0, r.mismatch("number")
}

func (r EvalResult) String() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if s, ok := r.value.(string); ok {
		return s, nil
	}
	return "", r.mismatch("string")
}

func (r EvalResult) Array() ([]any, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !value.IsArray(r.value) {
		return nil, r.mismatch("array")
	}
	return r.value.([]any), nil
}

func (r EvalResult) Object() (map[string]any, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !value.IsObject(r.value) {
		return nil, r.mismatch("object")
	}
	return r.value.(map[string]any), nil
}

func exprTypeFromCEL(t *cel.Type) ExprType {
	if t == nil {
		return ExprTypeUnknown
	}
	switch t {
	case cel.BoolType:
		return ExprTypeBool
	case cel.IntType, cel.UintType:
		return ExprTypeInt
	case cel.DoubleType:
		return ExprTypeDouble
	case cel.StringType, cel.BytesType, cel.TimestampType, cel.DurationType:
		return ExprTypeString
	case cel.NullType:
		return ExprTypeNull
	}
	switch t.Kind() {
	case cel.ListKind:
		return ExprTypeList
	case cel.MapKind:
		return ExprTypeMap
	}
	return ExprTypeDyn
}
