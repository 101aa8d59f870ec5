package builtins

import (
	"strconv"

	"github.com/unijord/tplfuncs/pkg/value"
)

// Impl is the raw implementation of a builtin.
type Impl func(args ...value.Value) (value.Value, error)

// PolicyKind identifies the shape of a validation policy.
type PolicyKind int8

const (
	PolicyUnchecked PolicyKind = iota
	PolicyVariadic
	PolicyFixed
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyVariadic:
		return "variadic"
	case PolicyFixed:
		return "fixed"
	default:
		return "unchecked"
	}
}

// Unbounded marks a builtin without an upper argument count.
const Unbounded = -1

// Policy is the argument contract enforced before a builtin runs.
//
// When Args is set the call must match it exactly, one predicate per
// position. Otherwise, when Variadic is set, every argument must satisfy
// it and at least MinArgs must be given. With neither, arguments are
// passed through and MinArgs/MaxArgs only describe the arity the
// implementation accepts.
type Policy struct {
	Variadic value.Predicate
	Args     []value.Predicate
	MinArgs  int
	MaxArgs  int
}

// Variadic builds a policy where every argument satisfies pred.
func Variadic(pred value.Predicate, minArgs int) Policy {
	return Policy{Variadic: pred, MinArgs: minArgs, MaxArgs: Unbounded}
}

// Fixed builds a policy requiring exactly one argument per predicate.
func Fixed(preds ...value.Predicate) Policy {
	return Policy{
		Args:    append(make([]value.Predicate, 0, len(preds)), preds...),
		MinArgs: len(preds),
		MaxArgs: len(preds),
	}
}

// Unchecked builds a policy that accepts any arguments. The bounds are
// informational; the implementation validates its own input.
func Unchecked(minArgs, maxArgs int) Policy {
	return Policy{MinArgs: minArgs, MaxArgs: maxArgs}
}

func (p Policy) Kind() PolicyKind {
	switch {
	case p.Args != nil:
		return PolicyFixed
	case p.Variadic != nil:
		return PolicyVariadic
	default:
		return PolicyUnchecked
	}
}

// Arity returns the accepted argument count bounds. max is Unbounded
// for variadic policies.
func (p Policy) Arity() (min, max int) {
	return p.MinArgs, p.MaxArgs
}

func (p Policy) check(name string, args []value.Value) error {
	switch p.Kind() {
	case PolicyFixed:
		if len(args) != len(p.Args) {
			return badArguments(name)
		}
		for i, test := range p.Args {
			if !test(args[i]) {
				return badArguments(name)
			}
		}
	case PolicyVariadic:
		if p.MinArgs > 0 && len(args) < p.MinArgs {
			return tooFewArguments(name)
		}
		for _, arg := range args {
			if !p.Variadic(arg) {
				return badArguments(name)
			}
		}
	}
	return nil
}

// arity checks the argument count of an unchecked builtin from inside
// its implementation.
func arity(name string, args []value.Value, min, max int) error {
	if len(args) >= min && (max == Unbounded || len(args) <= max) {
		return nil
	}
	var want string
	switch {
	case min == max:
		want = strconv.Itoa(min)
	case max == Unbounded:
		want = "at least " + strconv.Itoa(min)
	default:
		want = strconv.Itoa(min) + " to " + strconv.Itoa(max)
	}
	return wrongArity(name, want, len(args))
}
