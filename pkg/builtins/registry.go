// Package builtins builds the registry of functions a template
// expression can call.
//
// Every builtin is registered with a Policy describing the arguments it
// accepts. Calls that violate a variadic or fixed policy fail with an
// *ArgumentError before the implementation runs; semantic failures
// (ErrRequiredValue, ErrDivisionByZero, date parsing errors) come from
// the implementation and are returned unchanged.
//
// A Registry is built once per evaluation context and never modified
// afterwards, so it can be shared by concurrent readers. The context's
// "now" is captured at build time as the default fromNow reference.
package builtins

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/unijord/tplfuncs/pkg/temporal"
	"github.com/unijord/tplfuncs/pkg/value"
)

// ContextNow is the evaluation context key holding the reference time.
const ContextNow = "now"

var (
	// ErrUnknownBuiltin is returned by Registry.Call for an unregistered name.
	ErrUnknownBuiltin = errors.New("unknown builtin")
	// ErrInvalidContext is returned by Build when the context "now" is unusable.
	ErrInvalidContext = errors.New("invalid evaluation context")
)

// Context is the evaluation context supplied by the interpreter. Only
// ContextNow is read; it may hold a timestamp string or a time.Time.
type Context map[string]any

// Config holds registry construction options.
type Config struct {
	Logger *slog.Logger
	// Clock supplies the reference time when the context has no "now".
	Clock func() time.Time
	// DateLayout is the default output format of iso_to_utc and of
	// date-typed custom fields. Defaults to temporal.Layout.
	DateLayout string
}

// Builtin is a named function wrapped with its validation policy.
type Builtin struct {
	name   string
	policy Policy
	impl   Impl
}

func (b *Builtin) Name() string   { return b.name }
func (b *Builtin) Policy() Policy { return b.policy }

// Call validates args against the policy and runs the implementation.
func (b *Builtin) Call(args ...value.Value) (value.Value, error) {
	norm := make([]value.Value, len(args))
	for i := range args {
		v, err := value.Normalize(args[i])
		if err != nil {
			return nil, &ArgumentError{Name: b.name, Reason: fmt.Sprintf("%s: %v", b.name, err)}
		}
		norm[i] = v
	}
	if err := b.policy.check(b.name, norm); err != nil {
		return nil, err
	}
	return b.impl(norm...)
}

// Func exposes the builtin as a callable template value.
func (b *Builtin) Func() value.Func {
	return b.Call
}

// Registry maps builtin names to their implementations.
type Registry struct {
	funcs  map[string]*Builtin
	now    time.Time
	logger *slog.Logger
}

// Build creates the registry for one evaluation context.
func Build(ctx Context, cfg Config) (*Registry, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = temporal.Layout
	}

	now, err := contextNow(ctx)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		funcs:  make(map[string]*Builtin),
		now:    now,
		logger: cfg.Logger.With("component", "builtins"),
	}
	c := &catalog{now: now, clock: cfg.Clock, layout: cfg.DateLayout}
	for _, e := range c.entries() {
		if _, dup := r.funcs[e.name]; dup {
			return nil, fmt.Errorf("builtin %q registered twice", e.name)
		}
		r.funcs[e.name] = &Builtin{name: e.name, policy: e.policy, impl: e.impl}
	}

	r.logger.Debug("registry built",
		slog.Int("builtins", len(r.funcs)),
		slog.Bool("context_now", !now.IsZero()),
	)
	return r, nil
}

func contextNow(ctx Context) (time.Time, error) {
	raw, ok := ctx[ContextNow]
	if !ok || raw == nil {
		return time.Time{}, nil
	}
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		t, err := temporal.Parse(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: now: %w", ErrInvalidContext, err)
		}
		return t.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: now has type %T", ErrInvalidContext, raw)
	}
}

// Lookup returns the builtin registered under name.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.funcs[name]
	return b, ok
}

// Call invokes the builtin registered under name.
func (r *Registry) Call(name string, args ...value.Value) (value.Value, error) {
	b, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	return b.Call(args...)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int { return len(r.funcs) }

// Now returns the reference time captured from the context, or the zero
// time when the context had none.
func (r *Registry) Now() time.Time { return r.now }

// Values returns the registry as template values keyed by name, for
// interpreters that resolve functions through their variable scope.
func (r *Registry) Values() map[string]any {
	out := make(map[string]any, len(r.funcs))
	for name, b := range r.funcs {
		out[name] = b.Func()
	}
	return out
}
