package hclfuncs

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/unijord/tplfuncs/pkg/builtins"
	"github.com/unijord/tplfuncs/pkg/value"
)

// EvalContext returns an HCL evaluation context holding the builtins of
// reg and vars as top-level variables.
func EvalContext(reg *builtins.Registry, vars map[string]any) (*hcl.EvalContext, error) {
	variables := make(map[string]cty.Value, len(vars))
	for name, v := range vars {
		cv, err := ToCty(v)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		variables[name] = cv
	}
	return &hcl.EvalContext{
		Variables: variables,
		Functions: Functions(reg),
	}, nil
}

// Eval parses src as a native HCL expression and evaluates it.
//
// When a builtin fails, the returned error wraps the builtin's own error so
// it can be matched with errors.Is and errors.As.
func Eval(src string, ctx *hcl.EvalContext) (value.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "expr.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse: %w", diags)
	}
	out, diags := expr.Value(ctx)
	if diags.HasErrors() {
		if err := CallError(diags); err != nil {
			return nil, fmt.Errorf("eval: %w", err)
		}
		return nil, fmt.Errorf("eval: %w", diags)
	}
	return FromCty(out)
}

// CallError returns the first error raised by a function call in diags.
func CallError(diags hcl.Diagnostics) error {
	for _, d := range diags {
		extra, ok := hcl.DiagnosticExtra[hclsyntax.FunctionCallDiagExtra](d)
		if !ok {
			continue
		}
		if err := extra.FunctionCallError(); err != nil {
			return fmt.Errorf("%s: %w", extra.CalledFunctionName(), err)
		}
	}
	return nil
}
