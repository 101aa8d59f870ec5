package temporal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffset(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1 day", day},
		{"2 days", 2 * day},
		{"-1 hour", -time.Hour},
		{"+ 3 minutes", 3 * time.Minute},
		{"  -  45 seconds", -45 * time.Second},
		{"1y", 365 * day},
		{"2mo", 60 * day},
		{"1 week 2 days", 9 * day},
		{"1y 2mo 3w 4d 5h 6m 7s", 365*day + 60*day + 21*day + 4*day + 5*time.Hour + 6*time.Minute + 7*time.Second},
		{"10min", 10 * time.Minute},
		{"", 0},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOffset(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseOffset_Invalid(t *testing.T) {
	for _, in := range []string{
		"tomorrow", "1 fortnight", "3 days 2 years",
		"300 years", "-300 years", "292y 200d", "99999999999999999999s",
	} {
		_, err := ParseOffset(in)
		assert.True(t, errors.Is(err, ErrInvalidOffset), "ParseOffset(%q) = %v", in, err)
	}
}

func TestFromNow(t *testing.T) {
	ref := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	got, err := FromNow("1 day", ref)
	require.NoError(t, err)
	assert.Equal(t, ref.Add(24*time.Hour), got)

	got, err = FromNow("-2 hours", ref)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T12:30:45.000Z", Canonical(got))

	got, err = FromNow("290 years", ref)
	require.NoError(t, err)
	assert.True(t, got.After(ref))

	got, err = FromNow("-290 years", ref)
	require.NoError(t, err)
	assert.True(t, got.Before(ref))

	_, err = FromNow("300 years", ref)
	assert.True(t, errors.Is(err, ErrInvalidOffset))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023-01-01T00:00:00Z", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-01-01T10:20:30.123Z", time.Date(2023, 1, 1, 10, 20, 30, 123000000, time.UTC)},
		{"2023-01-01 05:00:00", time.Date(2023, 1, 1, 5, 0, 0, 0, time.UTC)},
		{"2023-01-01T02:00:00+02:00", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s want %s", got, tc.want)
		})
	}

	_, err := Parse("not a date")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 3, 120500000, time.UTC)

	s, err := Format(ts, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09T07:05:03.120Z", s)

	s, err = Format(ts, "%Y-%m-%d %H:%M:%S")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 07:05:03", s)

	s, err = Format(ts, "%Y-%m-%dT%H:%M:%S.%fZ")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09T07:05:03.120500Z", s)

	s, err = Format(ts, "02/01/2006")
	require.NoError(t, err)
	assert.Equal(t, "09/03/2024", s)
}
