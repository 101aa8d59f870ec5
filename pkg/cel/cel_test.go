package cel

import (
	"errors"
	"testing"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/unijord/tplfuncs/pkg/builtins"
	"github.com/unijord/tplfuncs/pkg/value"
)

var errTest = errors.New("test error")

func TestExprType_String(t *testing.T) {
	tests := []struct {
		typ  ExprType
		want string
	}{
		{ExprTypeBool, "bool"},
		{ExprTypeInt, "int"},
		{ExprTypeDouble, "double"},
		{ExprTypeString, "string"},
		{ExprTypeList, "list"},
		{ExprTypeMap, "map"},
		{ExprTypeDyn, "dyn"},
		{ExprTypeNull, "null"},
		{ExprTypeUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("ExprType(%d).String() = %s, want %s", tt.typ, got, tt.want)
		}
	}
}

func TestEvalResult(t *testing.T) {
	r := NewEvalResult(int64(42), ExprTypeInt)
	if !r.Ok() || r.Err() != nil {
		t.Fatalf("expected ok result, got %v", r.Err())
	}
	if v, err := r.Int(); err != nil || v != 42 {
		t.Errorf("Int() = %d, %v", v, err)
	}
	if _, err := r.String(); err == nil {
		t.Error("expected error reading an int as string")
	}
	if r.Kind() != value.KindNumber {
		t.Errorf("Kind() = %s, want number", r.Kind())
	}
	if _, err := r.Array(); err == nil {
		t.Error("expected error reading an int as array")
	}
	if v, err := r.Number(); err != nil || v != 42 {
		t.Errorf("Number() = %f, %v", v, err)
	}

	f := NewEvalResult(0.5, ExprTypeDyn)
	if v, err := f.Number(); err != nil || v != 0.5 {
		t.Errorf("Number() = %f, %v", v, err)
	}
	if _, err := f.Int(); err == nil {
		t.Error("expected error reading a float as int")
	}
}

func TestEvalResult_Collections(t *testing.T) {
	a := NewEvalResult([]any{"x", int64(1)}, ExprTypeList)
	items, err := a.Array()
	if err != nil || len(items) != 2 {
		t.Errorf("Array() = %#v, %v", items, err)
	}
	if a.Kind() != value.KindArray {
		t.Errorf("Kind() = %s, want array", a.Kind())
	}
	if _, err := a.Object(); err == nil {
		t.Error("expected error reading an array as object")
	}

	o := NewEvalResult(map[string]any{"k": nil}, ExprTypeMap)
	obj, err := o.Object()
	if err != nil || len(obj) != 1 {
		t.Errorf("Object() = %#v, %v", obj, err)
	}
	if o.Kind() != value.KindObject {
		t.Errorf("Kind() = %s, want object", o.Kind())
	}

	n := NewEvalResult(nil, ExprTypeNull)
	if n.Kind() != value.KindNull {
		t.Errorf("Kind() = %s, want null", n.Kind())
	}
	if _, err := n.Object(); err == nil {
		t.Error("expected error reading null as object")
	}
}

func TestEvalResult_Error(t *testing.T) {
	r := NewEvalError(errTest)
	if r.Ok() {
		t.Error("expected Ok() = false")
	}
	if !errors.Is(r.Err(), errTest) {
		t.Errorf("Err() = %v, want errTest", r.Err())
	}
	if _, err := r.String(); !errors.Is(err, errTest) {
		t.Errorf("String() error = %v, want errTest", err)
	}
	if _, err := r.Object(); !errors.Is(err, errTest) {
		t.Errorf("Object() error = %v, want errTest", err)
	}
	if r.Kind() != value.KindInvalid {
		t.Errorf("Kind() = %s, want invalid", r.Kind())
	}
}

func TestEnvBuilder_WithContextVariables(t *testing.T) {
	env, err := NewEnvBuilder().
		WithContextVariables(builtins.Context{"now": "2024-01-01T00:00:00Z", "user": map[string]any{}}).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	_, issues := env.Compile("user.name == 'x' && now != ''")
	if issues != nil && issues.Err() != nil {
		t.Errorf("compile with context variables: %v", issues.Err())
	}
}

func TestCompiler_Compile(t *testing.T) {
	env, err := NewEnvBuilder().
		WithVariable("count", cel.IntType).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	c := NewCompiler(env)

	expr, err := c.Compile("count >= 3")
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if expr.Source() != "count >= 3" {
		t.Errorf("Source() = %s", expr.Source())
	}
	if expr.OutputType() != ExprTypeBool {
		t.Errorf("OutputType() = %s, want bool", expr.OutputType())
	}

	if _, err := c.Compile("count >="); err == nil {
		t.Error("expected parse error")
	}
	if _, err := c.Compile("missing + 1"); err == nil {
		t.Error("expected undeclared reference error")
	}
}

func TestCompiler_TypedCompile(t *testing.T) {
	env, _ := NewEnvBuilder().
		WithVariable("count", cel.IntType).
		WithVariable("label", cel.StringType).
		WithVariable("data", cel.DynType).
		Build()
	c := NewCompiler(env)

	tests := []struct {
		name    string
		compile func(string) (*CompiledExpr, error)
		expr    string
		wantErr bool
	}{
		{"bool", c.CompileBool, "count > 1", false},
		{"bool rejects int", c.CompileBool, "count + 1", true},
		{"bool accepts dyn", c.CompileBool, "data", false},
		{"string", c.CompileString, "label + '!'", false},
		{"string rejects bool", c.CompileString, "label == ''", true},
		{"int", c.CompileInt, "count * 2", false},
		{"int rejects string", c.CompileInt, "label", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.compile(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Errorf("compile(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestEvaluator_Eval(t *testing.T) {
	env, _ := NewEnvBuilder().
		WithVariable("a", cel.IntType).
		WithVariable("b", cel.IntType).
		WithVariable("tags", cel.ListType(cel.StringType)).
		Build()
	c := NewCompiler(env)
	e := NewEvaluator()

	sum, _ := c.CompileInt("a + b")
	if got, err := e.EvalInt(sum, map[string]any{"a": int64(2), "b": int64(5)}); err != nil || got != 7 {
		t.Errorf("EvalInt() = %d, %v", got, err)
	}

	list, _ := c.Compile("tags + ['z']")
	got, err := e.EvalAny(list, map[string]any{"tags": []string{"x"}})
	if err != nil {
		t.Fatalf("EvalAny() error: %v", err)
	}
	items, ok := got.([]any)
	if !ok || len(items) != 2 || items[0] != "x" || items[1] != "z" {
		t.Errorf("EvalAny() = %#v", got)
	}

	got, err = e.EvalAny(list, map[string]any{"tags": []string{}})
	if err != nil {
		t.Fatalf("EvalAny() error: %v", err)
	}
	if items, ok := got.([]any); !ok || len(items) != 1 {
		t.Errorf("EvalAny() = %#v", got)
	}

	div, _ := c.Compile("a / b")
	if _, err := e.EvalAny(div, map[string]any{"a": int64(1), "b": int64(0)}); err == nil {
		t.Error("expected division by zero error")
	}
}

func TestEvaluator_EvalString(t *testing.T) {
	env, _ := NewEnvBuilder().
		WithVariable("age", cel.IntType).
		Build()
	c := NewCompiler(env)
	e := NewEvaluator()

	expr, err := c.CompileString("age < 18 ? 'minor' : 'adult'")
	if err != nil {
		t.Fatalf("CompileString() error: %v", err)
	}

	tests := []struct {
		age  int64
		want string
	}{
		{10, "minor"},
		{18, "adult"},
	}
	for _, tt := range tests {
		got, err := e.EvalString(expr, map[string]any{"age": tt.age})
		if err != nil || got != tt.want {
			t.Errorf("age=%d got %q, %v; want %q", tt.age, got, err, tt.want)
		}
	}
}

func TestActivationPool(t *testing.T) {
	pool := newActivationPool()

	a := pool.get(map[string]any{"x": int64(10)})
	if v, ok := a.ResolveName("x"); !ok || v != int64(10) {
		t.Errorf("ResolveName(x) = %v, %v", v, ok)
	}
	if _, ok := a.ResolveName("y"); ok {
		t.Error("expected y not found")
	}
	if a.Parent() != nil {
		t.Error("expected nil parent")
	}
	pool.put(a)

	b := pool.get(map[string]any{"y": true})
	if _, ok := b.ResolveName("x"); ok {
		t.Error("expected x cleared after put")
	}
	if v, ok := b.ResolveName("y"); !ok || v != true {
		t.Errorf("ResolveName(y) = %v, %v", v, ok)
	}
	pool.put(b)
}

func TestEvaluator_TemporalResultsAreStrings(t *testing.T) {
	env, _ := NewEnvBuilder().
		WithVariable("ts", cel.TimestampType).
		Build()
	c := NewCompiler(env)

	tests := []struct {
		expr string
		want string
	}{
		{"ts", "2024-06-15T14:30:45Z"},
		{"duration('90s')", "1m30s"},
		{"b'ab'", "ab"},
	}
	for _, tt := range tests {
		expr, err := c.Compile(tt.expr)
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", tt.expr, err)
		}
		if expr.OutputType() != ExprTypeString {
			t.Errorf("OutputType(%q) = %s, want string", tt.expr, expr.OutputType())
		}
		r := NewEvaluator().Eval(expr, map[string]any{"ts": time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)})
		if got, err := r.String(); err != nil || got != tt.want {
			t.Errorf("Eval(%q) = %q, %v; want %q", tt.expr, got, err, tt.want)
		}
		if r.Kind() != value.KindString {
			t.Errorf("Kind(%q) = %s, want string", tt.expr, r.Kind())
		}
	}
}
