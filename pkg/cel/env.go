// Package cel evaluates CEL expressions against the template builtin
// registry. It is the reference interpreter for the registry: builtins
// are looked up by name and invoked with positional arguments.
package cel

import (
	"sort"

	"github.com/google/cel-go/cel"

	"github.com/unijord/tplfuncs/pkg/builtins"
	"github.com/unijord/tplfuncs/pkg/cel/ext"
)

type EnvBuilder struct {
	opts []cel.EnvOption
	err  error
}

func NewEnvBuilder() *EnvBuilder {
	return &EnvBuilder{}
}

func (b *EnvBuilder) WithVariable(name string, t *cel.Type) *EnvBuilder {
	if b.err != nil {
		return b
	}
	b.opts = append(b.opts, cel.Variable(name, t))
	return b
}

// WithContextVariables declares every key of the evaluation context as a
// dyn variable.
func (b *EnvBuilder) WithContextVariables(ctx builtins.Context) *EnvBuilder {
	if b.err != nil {
		return b
	}
	names := make([]string, 0, len(ctx))
	for name := range ctx {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.opts = append(b.opts, cel.Variable(name, cel.DynType))
	}
	return b
}

// WithBuiltins exposes every builtin of reg as a CEL function.
func (b *EnvBuilder) WithBuiltins(reg *builtins.Registry, opts ...ext.Option) *EnvBuilder {
	if b.err != nil {
		return b
	}
	b.opts = append(b.opts, ext.Builtins(reg, opts...))
	return b
}

func (b *EnvBuilder) Build() (*cel.Env, error) {
	if b.err != nil {
		return nil, b.err
	}
	return cel.NewEnv(b.opts...)
}
