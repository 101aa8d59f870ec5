// Package hclfuncs exposes the template builtin registry to HCL
// expressions as cty functions.
package hclfuncs

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/unijord/tplfuncs/pkg/builtins"
	"github.com/unijord/tplfuncs/pkg/value"
)

// Functions returns one cty function per builtin of reg, keyed by name.
// Arity and argument kinds are checked by the registry when called.
func Functions(reg *builtins.Registry) map[string]function.Function {
	funcs := make(map[string]function.Function, reg.Len())
	for _, name := range reg.Names() {
		b, _ := reg.Lookup(name)
		funcs[name] = wrap(b)
	}
	return funcs
}

func wrap(b *builtins.Builtin) function.Function {
	return function.New(&function.Spec{
		Description: fmt.Sprintf("%s builtin (%s)", b.Name(), b.Policy().Kind()),
		VarParam: &function.Parameter{
			Name:             "args",
			Type:             cty.DynamicPseudoType,
			AllowNull:        true,
			AllowDynamicType: true,
		},
		Type: function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			native := make([]value.Value, len(args))
			for i, arg := range args {
				v, err := FromCty(arg)
				if err != nil {
					return cty.NilVal, function.NewArgError(i, err)
				}
				native[i] = v
			}
			out, err := b.Call(native...)
			if err != nil {
				return cty.NilVal, err
			}
			return ToCty(out)
		},
	})
}
