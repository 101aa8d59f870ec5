package cel

import (
	"sync"

	"github.com/google/cel-go/interpreter"
)

// activation resolves names from the caller's variables. The map is
// referenced, not copied, and must not change during evaluation.
type activation struct {
	vars map[string]any
}

func (a *activation) ResolveName(name string) (any, bool) {
	v, ok := a.vars[name]
	return v, ok
}

func (a *activation) Parent() interpreter.Activation {
	return nil
}

var _ interpreter.Activation = (*activation)(nil)

type activationPool struct {
	pool sync.Pool
}

func newActivationPool() *activationPool {
	p := &activationPool{}
	p.pool.New = func() any { return new(activation) }
	return p
}

func (p *activationPool) get(vars map[string]any) *activation {
	a := p.pool.Get().(*activation)
	a.vars = vars
	return a
}

func (p *activationPool) put(a *activation) {
	a.vars = nil
	p.pool.Put(a)
}
