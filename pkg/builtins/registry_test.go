package builtins

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unijord/tplfuncs/pkg/value"
)

var catalogNames = []string{
	"abs", "calculate_chrs", "ceil", "custom_fields", "custom_fields_generic",
	"divide_number", "floor", "fromNow", "get", "int", "iso_to_epoch",
	"iso_to_utc", "len", "lowercase", "lstrip", "max", "min",
	"multiply_number", "only_one_key_present", "required_value", "rstrip",
	"sqrt", "str", "strip", "typeof", "uppercase",
}

func TestBuild_Names(t *testing.T) {
	reg, err := Build(nil, Config{})
	require.NoError(t, err)
	assert.Equal(t, catalogNames, reg.Names())
	assert.Equal(t, len(catalogNames), reg.Len())

	for _, name := range catalogNames {
		b, ok := reg.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, b.Name())
	}
}

func TestBuild_Policies(t *testing.T) {
	reg, err := Build(nil, Config{})
	require.NoError(t, err)

	tests := map[string]PolicyKind{
		"min":            PolicyVariadic,
		"fromNow":        PolicyVariadic,
		"sqrt":           PolicyFixed,
		"typeof":         PolicyFixed,
		"custom_fields":  PolicyFixed,
		"int":            PolicyUnchecked,
		"get":            PolicyUnchecked,
		"required_value": PolicyUnchecked,
	}
	for name, kind := range tests {
		b, _ := reg.Lookup(name)
		assert.Equal(t, kind, b.Policy().Kind(), name)
	}
}

func TestBuild_ContextNow(t *testing.T) {
	reg, err := Build(Context{ContextNow: testNow}, Config{})
	require.NoError(t, err)
	assert.Equal(t, testNow, reg.Now())

	out, err := reg.Call("fromNow", "0 seconds")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T14:30:45.000Z", out)
}

func TestBuild_ClockFallback(t *testing.T) {
	clock := func() time.Time { return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) }
	reg, err := Build(Context{}, Config{Clock: clock})
	require.NoError(t, err)
	assert.True(t, reg.Now().IsZero())

	out, err := reg.Call("fromNow", "1 week")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-08T00:00:00.000Z", out)
}

func TestBuild_RegistriesDoNotShareNow(t *testing.T) {
	a, err := Build(Context{ContextNow: "2020-01-01T00:00:00.000Z"}, Config{})
	require.NoError(t, err)
	b, err := Build(Context{ContextNow: "2030-01-01T00:00:00.000Z"}, Config{})
	require.NoError(t, err)

	outA, _ := a.Call("fromNow", "1 day")
	outB, _ := b.Call("fromNow", "1 day")
	assert.Equal(t, "2020-01-02T00:00:00.000Z", outA)
	assert.Equal(t, "2030-01-02T00:00:00.000Z", outB)
}

func TestBuild_InvalidContext(t *testing.T) {
	_, err := Build(Context{ContextNow: "not a time"}, Config{})
	assert.True(t, errors.Is(err, ErrInvalidContext))

	_, err = Build(Context{ContextNow: 12}, Config{})
	assert.True(t, errors.Is(err, ErrInvalidContext))
}

func TestBuild_DateLayout(t *testing.T) {
	reg, err := Build(nil, Config{DateLayout: "%Y-%m-%d"})
	require.NoError(t, err)

	out, err := reg.Call("iso_to_utc", "2022-07-04T23:30:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, "2022-07-05", out)
}

func TestBuild_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Build(nil, Config{Logger: logger})
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "registry built"), buf.String())
	assert.True(t, strings.Contains(buf.String(), "component=builtins"), buf.String())
}

func TestRegistry_UnknownBuiltin(t *testing.T) {
	reg, err := Build(nil, Config{})
	require.NoError(t, err)

	_, err = reg.Call("nope")
	assert.True(t, errors.Is(err, ErrUnknownBuiltin))

	_, ok := reg.Lookup("nope")
	assert.False(t, ok)
}

func TestRegistry_Values(t *testing.T) {
	reg, err := Build(nil, Config{})
	require.NoError(t, err)

	vals := reg.Values()
	require.Len(t, vals, reg.Len())

	upper, ok := vals["uppercase"].(value.Func)
	require.True(t, ok)
	out, err := upper("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", out)
}

func TestBuiltin_CallNormalizesUncheckedArgs(t *testing.T) {
	var seen []value.Value
	b := &Builtin{
		name:   "echo",
		policy: Unchecked(0, Unbounded),
		impl: func(args ...value.Value) (value.Value, error) {
			seen = args
			return nil, nil
		},
	}

	_, err := b.Call(7, []any{int32(2), "s"}, map[string]any{"k": uint8(1)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{
		int64(7),
		[]any{int64(2), "s"},
		map[string]any{"k": int64(1)},
		nil,
	}, seen)
}
