package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Compiler turns expression sources into programs for one environment.
type Compiler struct {
	env *cel.Env
}

func NewCompiler(env *cel.Env) *Compiler {
	return &Compiler{env: env}
}

func (c *Compiler) Compile(expr string) (*CompiledExpr, error) {
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile: %w", issues.Err())
	}

	prog, err := c.env.Program(ast, cel.EvalOptions(cel.OptOptimize))
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}

	return &CompiledExpr{
		source:     expr,
		program:    prog,
		outputType: exprTypeFromCEL(ast.OutputType()),
	}, nil
}

// CompileBool compiles expr and rejects it unless it yields bool or dyn.
// Builtin calls are always dyn, so their result type is checked at
// evaluation.
func (c *Compiler) CompileBool(expr string) (*CompiledExpr, error) {
	return c.compileAs(expr, ExprTypeBool)
}

func (c *Compiler) CompileString(expr string) (*CompiledExpr, error) {
	return c.compileAs(expr, ExprTypeString)
}

func (c *Compiler) CompileInt(expr string) (*CompiledExpr, error) {
	return c.compileAs(expr, ExprTypeInt)
}

func (c *Compiler) compileAs(expr string, want ExprType) (*CompiledExpr, error) {
	compiled, err := c.Compile(expr)
	if err != nil {
		return nil, err
	}
	if compiled.outputType != want && compiled.outputType != ExprTypeDyn {
		return nil, fmt.Errorf("expression must return %s, got %s", want, compiled.outputType)
	}
	return compiled, nil
}
