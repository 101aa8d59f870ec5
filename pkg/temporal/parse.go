package temporal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lestrrat-go/strftime"
)

var (
	// ErrInvalidDate is returned when a timestamp string cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidFormat is returned when a format pattern is rejected.
	ErrInvalidFormat = errors.New("invalid date format")
)

// Parse reads an ISO-like timestamp. Strings without a zone are taken
// as UTC.
func Parse(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	return t, nil
}

// Format renders t using pattern. Patterns containing '%' are strftime
// patterns (with %f for microseconds and %L for milliseconds), anything
// else is a Go reference layout. An empty pattern selects Layout.
func Format(t time.Time, pattern string) (string, error) {
	if pattern == "" {
		return t.Format(Layout), nil
	}
	if !strings.Contains(pattern, "%") {
		return t.Format(pattern), nil
	}
	s, err := strftime.Format(pattern, t,
		strftime.WithMilliseconds('L'),
		strftime.WithSpecification('f', microseconds{}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidFormat, pattern, err)
	}
	return s, nil
}

type microseconds struct{}

func (microseconds) Append(b []byte, t time.Time) []byte {
	return fmt.Appendf(b, "%06d", t.Nanosecond()/int(time.Microsecond))
}
