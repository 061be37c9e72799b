package cron

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidExpression is returned (wrapped in a *ParseError) for any
// expression that does not parse.
var ErrInvalidExpression = errors.New("invalid cron expression")

// ParseError describes why an expression failed to parse.
type ParseError struct {
	Expression string
	Field      *FieldType // nil when the field count is wrong
	Reason     string
}

func (e *ParseError) Error() string {
	if e.Field != nil {
		return fmt.Sprintf("invalid cron expression %q: %s field: %s", e.Expression, *e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid cron expression %q: %s", e.Expression, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidExpression
}

// Expression is a parsed 5-field cron expression. It is immutable.
type Expression struct {
	Minute     Field `json:"minute" yaml:"minute"`
	Hour       Field `json:"hour" yaml:"hour"`
	DayOfMonth Field `json:"day_of_month" yaml:"day_of_month"`
	Month      Field `json:"month" yaml:"month"`
	Weekday    Field `json:"weekday" yaml:"weekday"`
}

// Parse parses a standard cron expression of exactly five
// whitespace-separated fields: minute hour day-of-month month day-of-week.
func Parse(expr string) (*Expression, error) {
	tokens := strings.Fields(expr)
	if len(tokens) != len(FieldTypes) {
		return nil, &ParseError{
			Expression: expr,
			Reason:     fmt.Sprintf("expected %d fields, got %d", len(FieldTypes), len(tokens)),
		}
	}

	var fields [len(FieldTypes)]Field
	for i, ft := range FieldTypes {
		f, err := parseField(tokens[i], ft)
		if err != nil {
			ft := ft
			return nil, &ParseError{Expression: expr, Field: &ft, Reason: err.Error()}
		}
		fields[i] = f
	}

	return &Expression{
		Minute:     fields[Minute],
		Hour:       fields[Hour],
		DayOfMonth: fields[DayOfMonth],
		Month:      fields[Month],
		Weekday:    fields[Weekday],
	}, nil
}

// MustParse is like Parse but panics on error
func MustParse(expr string) *Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// Fields returns the five fields in expression order
func (e *Expression) Fields() [5]Field {
	return [5]Field{e.Minute, e.Hour, e.DayOfMonth, e.Month, e.Weekday}
}

// Field returns the field of the given type
func (e *Expression) Field(ft FieldType) Field {
	return e.Fields()[ft]
}

// String returns the expression with fields joined by single spaces
func (e *Expression) String() string {
	fields := e.Fields()
	raw := make([]string, len(fields))
	for i, f := range fields {
		raw[i] = f.Raw
	}
	return strings.Join(raw, " ")
}

// Matches reports whether t (in its own location, truncated to the minute)
// satisfies all five fields.
func (e *Expression) Matches(t time.Time) bool {
	return e.Minute.Matches(t.Minute()) &&
		e.Hour.Matches(t.Hour()) &&
		e.Month.Matches(int(t.Month())) &&
		e.dayMatches(t)
}

// dayMatches applies the standard cron rule: when both day-of-month and
// weekday are restricted a match on either is enough, otherwise both must match.
func (e *Expression) dayMatches(t time.Time) bool {
	domMatch := e.DayOfMonth.Matches(t.Day())
	dowMatch := e.Weekday.Matches(int(t.Weekday()))

	if e.DayOfMonth.IsWildcard() || e.Weekday.IsWildcard() {
		return domMatch && dowMatch
	}
	return domMatch || dowMatch
}
