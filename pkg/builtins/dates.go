package builtins

import (
	"fmt"
	"time"

	"github.com/unijord/tplfuncs/pkg/temporal"
	"github.com/unijord/tplfuncs/pkg/value"
)

// reference returns the fromNow reference time: the explicit argument,
// then the context "now", then the clock.
func (c *catalog) reference(args []value.Value) (time.Time, error) {
	if len(args) > 1 && args[1].(string) != "" {
		return temporal.Parse(args[1].(string))
	}
	if !c.now.IsZero() {
		return c.now, nil
	}
	return c.clock().UTC(), nil
}

func (c *catalog) fromNow(args ...value.Value) (value.Value, error) {
	if len(args) > 2 {
		return nil, wrongArity("fromNow", "1 to 2", len(args))
	}
	ref, err := c.reference(args)
	if err != nil {
		return nil, fmt.Errorf("fromNow: %w", err)
	}
	t, err := temporal.FromNow(args[0].(string), ref)
	if err != nil {
		return nil, fmt.Errorf("fromNow: %w", err)
	}
	return temporal.Canonical(t), nil
}

// normalizeDate parses v and renders it in UTC with pattern, or with the
// registry layout when pattern is empty. Null passes through.
func (c *catalog) normalizeDate(v value.Value, pattern string) (value.Value, error) {
	if v == nil {
		return nil, nil
	}
	t, err := parseTime(v)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = c.layout
	}
	return temporal.Format(t.UTC(), pattern)
}

func (c *catalog) isoToUTC(args ...value.Value) (value.Value, error) {
	if err := arity("iso_to_utc", args, 1, 2); err != nil {
		return nil, err
	}
	var pattern string
	if len(args) == 2 && args[1] != nil {
		p, ok := args[1].(string)
		if !ok {
			return nil, badArguments("iso_to_utc")
		}
		pattern = p
	}
	out, err := c.normalizeDate(args[0], pattern)
	if err != nil {
		return nil, fmt.Errorf("iso_to_utc: %w", err)
	}
	return out, nil
}

func execIsoToEpoch(args ...value.Value) (value.Value, error) {
	if err := arity("iso_to_epoch", args, 1, 1); err != nil {
		return nil, err
	}
	if args[0] == nil {
		return nil, nil
	}
	t, err := parseTime(args[0])
	if err != nil {
		return nil, fmt.Errorf("iso_to_epoch: %w", err)
	}
	return t.UnixMilli(), nil
}

// execCalculateChrs returns end minus start in milliseconds.
func execCalculateChrs(args ...value.Value) (value.Value, error) {
	if err := arity("calculate_chrs", args, 2, 2); err != nil {
		return nil, err
	}
	if args[0] == nil || args[1] == nil {
		return nil, nil
	}
	start, err := parseTime(args[0])
	if err != nil {
		return nil, fmt.Errorf("calculate_chrs: %w", err)
	}
	end, err := parseTime(args[1])
	if err != nil {
		return nil, fmt.Errorf("calculate_chrs: %w", err)
	}
	return end.Sub(start).Milliseconds(), nil
}

func parseTime(v value.Value) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: expected a string, got %s", temporal.ErrInvalidDate, value.KindOf(v))
	}
	return temporal.Parse(s)
}
