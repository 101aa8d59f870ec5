package cel

import (
	"fmt"

	"github.com/unijord/tplfuncs/pkg/cel/ext"
)

// Evaluator runs compiled expressions. It is safe for concurrent use;
// activations are pooled between calls.
type Evaluator struct {
	activations *activationPool
}

func NewEvaluator() *Evaluator {
	return &Evaluator{activations: newActivationPool()}
}

// Eval runs expr and converts its result to a template value.
func (e *Evaluator) Eval(expr *CompiledExpr, vars map[string]any) EvalResult {
	act := e.activations.get(vars)
	defer e.activations.put(act)

	out, _, err := expr.program.Eval(act)
	if err != nil {
		return NewEvalError(fmt.Errorf("eval: %w", err))
	}
	v, err := ext.ToNative(out)
	if err != nil {
		return NewEvalError(fmt.Errorf("eval: %w", err))
	}
	return NewEvalResult(v, expr.outputType)
}

func (e *Evaluator) EvalString(expr *CompiledExpr, vars map[string]any) (string, error) {
	return e.Eval(expr, vars).String()
}

func (e *Evaluator) EvalInt(expr *CompiledExpr, vars map[string]any) (int64, error) {
	return e.Eval(expr, vars).Int()
}

func (e *Evaluator) EvalAny(expr *CompiledExpr, vars map[string]any) (any, error) {
	result := e.Eval(expr, vars)
	if result.Err() != nil {
		return nil, result.Err()
	}
	return result.Value(), nil
}
