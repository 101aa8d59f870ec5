// Package temporal holds the date and time helpers behind the date
// builtins: relative offsets, lenient timestamp parsing and formatting.
package temporal

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical timestamp rendering of the template language.
const Layout = "2006-01-02T15:04:05.000Z"

var (
	// ErrInvalidOffset is returned when a relative offset does not parse.
	ErrInvalidOffset = errors.New("invalid time offset")
)

// A year is 365 days and a month 30 days; calendar arithmetic is not
// attempted.
var offsetPattern = regexp.MustCompile(`^` +
	`(\s*(?P<years>\d+)\s*y(ears?)?)?` +
	`(\s*(?P<months>\d+)\s*mo(nths?)?)?` +
	`(\s*(?P<weeks>\d+)\s*w(eeks?)?)?` +
	`(\s*(?P<days>\d+)\s*d(ays?)?)?` +
	`(\s*(?P<hours>\d+)\s*h(ours?)?)?` +
	`(\s*(?P<minutes>\d+)\s*m(in(utes?)?)?)?\s*` +
	`(\s*(?P<seconds>\d+)\s*s(ec(onds?)?)?)?\s*$`)

var unitDurations = map[string]time.Duration{
	"years":   365 * 24 * time.Hour,
	"months":  30 * 24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
	"days":    24 * time.Hour,
	"hours":   time.Hour,
	"minutes": time.Minute,
	"seconds": time.Second,
}

// ParseOffset parses a human readable offset such as "2 days",
// "-1 hour" or "1y 2mo 3w 4d 5h 6m 7s" into a signed duration.
func ParseOffset(offset string) (time.Duration, error) {
	s := strings.TrimLeft(offset, " \t\r\n")
	sign := time.Duration(1)
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = strings.TrimLeft(s[1:], " \t\r\n")
	}
	if strings.HasPrefix(s, "+") {
		s = strings.TrimLeft(s[1:], " \t\r\n")
	}

	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q does not parse", ErrInvalidOffset, offset)
	}

	var total time.Duration
	for i, name := range offsetPattern.SubexpNames() {
		unit, ok := unitDurations[name]
		if !ok || m[i] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidOffset, offset, err)
		}
		// time.Duration spans about 292 years either way.
		if n > int64(math.MaxInt64/unit) || total > math.MaxInt64-time.Duration(n)*unit {
			return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidOffset, offset)
		}
		total += time.Duration(n) * unit
	}
	return sign * total, nil
}

// FromNow applies offset to reference.
func FromNow(offset string, reference time.Time) (time.Time, error) {
	d, err := ParseOffset(offset)
	if err != nil {
		return time.Time{}, err
	}
	return reference.Add(d), nil
}

// Canonical renders t in UTC with Layout.
func Canonical(t time.Time) string {
	return t.UTC().Format(Layout)
}
