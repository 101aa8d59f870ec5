package ext

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/unijord/tplfuncs/pkg/builtins"
	"github.com/unijord/tplfuncs/pkg/value"
)

// standardFunctions are CEL standard declarations a dyn overload would
// collide with.
var standardFunctions = map[string]bool{
	"bool":      true,
	"bytes":     true,
	"double":    true,
	"duration":  true,
	"dyn":       true,
	"int":       true,
	"size":      true,
	"string":    true,
	"timestamp": true,
	"type":      true,
	"uint":      true,
}

type builtinLib struct {
	reg         *builtins.Registry
	namespace   string
	maxVariadic int
}

func (l *builtinLib) LibraryName() string {
	if l.namespace != "" {
		return "tplfuncs.builtins." + l.namespace
	}
	return "tplfuncs.builtins"
}

func (l *builtinLib) CompileOptions() []cel.EnvOption {
	var opts []cel.EnvOption
	for _, name := range l.reg.Names() {
		fnName, ok := l.functionName(name)
		if !ok {
			continue
		}
		b, _ := l.reg.Lookup(name)
		minArgs, maxArgs := b.Policy().Arity()
		if maxArgs == builtins.Unbounded {
			maxArgs = max(l.maxVariadic, minArgs)
		}

		overloads := make([]cel.FunctionOpt, 0, maxArgs-minArgs+1)
		for n := minArgs; n <= maxArgs; n++ {
			overloads = append(overloads, cel.Overload(
				fmt.Sprintf("%s_dyn%d", fnName, n),
				dynArgs(n),
				cel.DynType,
				binding(n, invoke(b)),
			))
		}
		opts = append(opts, cel.Function(fnName, overloads...))
	}
	return opts
}

func (l *builtinLib) ProgramOptions() []cel.ProgramOption {
	return nil
}

func (l *builtinLib) functionName(name string) (string, bool) {
	if l.namespace != "" {
		return l.namespace + "." + name, true
	}
	return name, !standardFunctions[name]
}

func dynArgs(n int) []*cel.Type {
	args := make([]*cel.Type, n)
	for i := range args {
		args[i] = cel.DynType
	}
	return args
}

func binding(n int, fn func(args ...ref.Val) ref.Val) cel.OverloadOpt {
	switch n {
	case 1:
		return cel.UnaryBinding(func(arg ref.Val) ref.Val { return fn(arg) })
	case 2:
		return cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val { return fn(lhs, rhs) })
	default:
		return cel.FunctionBinding(fn)
	}
}

// invoke adapts a builtin to CEL values. Builtin errors are wrapped so
// callers can still match them with errors.Is and errors.As.
func invoke(b *builtins.Builtin) func(args ...ref.Val) ref.Val {
	return func(args ...ref.Val) ref.Val {
		native := make([]value.Value, len(args))
		for i, arg := range args {
			if types.IsError(arg) {
				return arg
			}
			v, err := ToNative(arg)
			if err != nil {
				return types.WrapErr(fmt.Errorf("%s: %w", b.Name(), err))
			}
			native[i] = v
		}
		out, err := b.Call(native...)
		if err != nil {
			return types.WrapErr(err)
		}
		return FromNative(out)
	}
}
