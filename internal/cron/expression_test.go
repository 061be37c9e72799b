package cron

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []string{
		"* * * * *",
		"0 * * * *",
		"*/5 * * * *",
		"0 9 * * 1-5",
		"30 14 1 * *",
		"0 0 * * 0",
		"0 0 * * 7",
		"0,30 * * * *",
		"0 9-17 * * *",
		"0 9-17/2 * * *",
		"0 0 1,15 */3 1-5,0",
		"  0   0  *  *   *  ",
		"0\t0\t*\t*\t*",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			e, err := Parse(expr)
			require.NoError(t, err)
			require.NotNil(t, e)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		expr      string
		wantField bool
	}{
		{"", false},
		{"* * * *", false},
		{"* * * * * *", false},
		{"@every 5m", false},
		{"not a cron", false},
		{"60 * * * *", true},
		{"* 25 * * *", true},
		{"* * 32 * *", true},
		{"* * * 13 *", true},
		{"* * * * 8", true},
		{"abc * * * *", true},
		{"*/0 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := Parse(tt.expr)
			require.Error(t, err)
			assert.Nil(t, e)
			assert.True(t, errors.Is(err, ErrInvalidExpression))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantField, perr.Field != nil)
		})
	}
}

func TestParse_ErrorIdentifiesField(t *testing.T) {
	_, err := Parse("0 0 * 13 *")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.NotNil(t, perr.Field)
	assert.Equal(t, Month, *perr.Field)
	assert.Contains(t, err.Error(), "month")
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"* * * * *", "* * * * *"},
		{"  */5   9-17 1,15  *  1-5 ", "*/5 9-17 1,15 * 1-5"},
		{"0\t0\t1\t1\t*", "0 0 1 1 *"},
		{"5/15 0-23/2 */10 1-12 7", "5/15 0-23/2 */10 1-12 7"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())

			again, err := Parse(e.String())
			require.NoError(t, err)
			assert.Equal(t, e.Fields(), again.Fields())
		})
	}
}

func TestParse_KeepsRawFields(t *testing.T) {
	e := MustParse("*/5 * * * *")
	assert.Equal(t, "*/5", e.Minute.Raw)
	require.Len(t, e.Minute.Terms, 1)
	assert.Equal(t, TermStep, e.Minute.Terms[0].Kind)
	assert.Equal(t, TermAny, e.Minute.Terms[0].Base)
	assert.Equal(t, 5, e.Minute.Terms[0].Interval)
	assert.Equal(t, Month, e.Field(Month).Type)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("* * *") })
}

func TestMatches(t *testing.T) {
	e := MustParse("0 9 * * 1-5")

	assert.True(t, e.Matches(time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC)))  // Monday
	assert.False(t, e.Matches(time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC))) // Sunday
	assert.False(t, e.Matches(time.Date(2026, 2, 16, 9, 1, 0, 0, time.UTC)))
	assert.False(t, e.Matches(time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC)))
}

func TestMatches_DayOfMonthOrWeekday(t *testing.T) {
	e := MustParse("0 0 15 * 1")

	assert.True(t, e.Matches(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))) // Sunday the 15th
	assert.True(t, e.Matches(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))  // Monday the 2nd
	assert.False(t, e.Matches(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))) // Tuesday the 3rd
}

func TestMatches_OnlyOneDayFieldRestricted(t *testing.T) {
	dom := MustParse("0 0 15 * *")
	assert.True(t, dom.Matches(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, dom.Matches(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))

	dow := MustParse("0 0 * * 1")
	assert.True(t, dow.Matches(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, dow.Matches(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
}
