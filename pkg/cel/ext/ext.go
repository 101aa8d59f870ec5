// Package ext binds the template builtin registry into a CEL environment.
//
// # Builtins
//
// Every builtin of a *builtins.Registry becomes a CEL function taking and
// returning dyn values. One overload is declared per accepted arity:
//
//   - fixed builtins:      exactly their predicate count
//   - unchecked builtins:  their declared min..max range
//   - variadic builtins:   min..MaxVariadicArity
//
// Argument validation stays in the registry, so a call such as
// len(5) compiles and fails at evaluation time with the registry's
// argument error.
//
// # Names
//
// Builtins whose name is already a CEL standard function (int) cannot be
// redeclared with dyn overloads and are skipped, unless WithNamespace is
// used, in which case every builtin is declared as <namespace>.<name>:
//
//	fromNow('1 day')          // no namespace
//	fn.int('42') + fn.len(s)  // WithNamespace("fn")
//
// # Values
//
// CEL values are converted to template values before the call (null to
// nil, int to int64, double to float64, lists to []any, maps with string
// keys to map[string]any, timestamps to RFC 3339 strings) and results are
// converted back with the default type adapter.
package ext

import (
	"github.com/google/cel-go/cel"

	"github.com/unijord/tplfuncs/pkg/builtins"
)

// MaxVariadicArity bounds the overloads declared for variadic builtins.
const MaxVariadicArity = 8

// Option configures the builtin library.
type Option func(*builtinLib)

// WithNamespace declares every builtin as ns.<name>.
func WithNamespace(ns string) Option {
	return func(l *builtinLib) {
		l.namespace = ns
	}
}

// WithMaxVariadicArity overrides MaxVariadicArity.
func WithMaxVariadicArity(n int) Option {
	return func(l *builtinLib) {
		if n > 0 {
			l.maxVariadic = n
		}
	}
}

// Builtins returns a CEL environment option exposing reg.
func Builtins(reg *builtins.Registry, opts ...Option) cel.EnvOption {
	lib := &builtinLib{reg: reg, maxVariadic: MaxVariadicArity}
	for _, opt := range opts {
		opt(lib)
	}
	return cel.Lib(lib)
}
