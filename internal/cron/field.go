// Package cron implements the cron expression engine: field validation,
// parsing of standard 5-field expressions, localized descriptions and
// estimation of upcoming fire times.
package cron

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wasilibs/go-re2"
)

// FieldType identifies one of the five positions of a cron expression
type FieldType int

const (
	// Minute is the first field (0-59)
	Minute FieldType = iota
	// Hour is the second field (0-23)
	Hour
	// DayOfMonth is the third field (1-31)
	DayOfMonth
	// Month is the fourth field (1-12)
	Month
	// Weekday is the fifth field (0-7, where 7 is Sunday like 0)
	Weekday
)

// FieldTypes lists all field types in expression order.
var FieldTypes = [...]FieldType{Minute, Hour, DayOfMonth, Month, Weekday}

type bounds struct {
	min, max int
}

var fieldBounds = [...]bounds{
	Minute:     {0, 59},
	Hour:       {0, 23},
	DayOfMonth: {1, 31},
	Month:      {1, 12},
	Weekday:    {0, 7},
}

var fieldNames = [...]string{
	Minute:     "minute",
	Hour:       "hour",
	DayOfMonth: "day",
	Month:      "month",
	Weekday:    "weekday",
}

// String returns the short name of the field type
func (ft FieldType) String() string {
	if !ft.valid() {
		return fmt.Sprintf("FieldType(%d)", int(ft))
	}
	return fieldNames[ft]
}

// Min returns the smallest legal value of the field
func (ft FieldType) Min() int { return fieldBounds[ft].min }

// Max returns the largest legal value of the field
func (ft FieldType) Max() int { return fieldBounds[ft].max }

func (ft FieldType) valid() bool {
	return ft >= Minute && ft <= Weekday
}

// ParseFieldType maps a field name to its FieldType.
// Accepts the short names plus the common aliases dom, dow, day-of-month and day-of-week.
func ParseFieldType(name string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "minute", "min":
		return Minute, nil
	case "hour":
		return Hour, nil
	case "day", "dom", "day-of-month":
		return DayOfMonth, nil
	case "month":
		return Month, nil
	case "weekday", "dow", "day-of-week":
		return Weekday, nil
	default:
		return 0, fmt.Errorf("unknown field type: %s (expected: minute, hour, day, month, weekday)", name)
	}
}

// TermKind is the variant tag of a Term
type TermKind int

const (
	// TermAny is the wildcard "*"
	TermAny TermKind = iota
	// TermSingle is a single value "n"
	TermSingle
	// TermRange is an inclusive range "a-b"
	TermRange
	// TermStep is "*/n", "a/n" or "a-b/n"
	TermStep
)

func (k TermKind) String() string {
	switch k {
	case TermAny:
		return "any"
	case TermSingle:
		return "single"
	case TermRange:
		return "range"
	case TermStep:
		return "step"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name for JSON and YAML output
func (k TermKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Term is one element of a field's comma-separated list.
//
// For TermStep, Base tells whether the step runs over the whole field (TermAny),
// from Start to the field maximum (TermSingle) or over Start-End (TermRange).
// Start and End are always resolved to the concrete bounds the term covers.
type Term struct {
	Kind     TermKind `json:"kind" yaml:"kind"`
	Base     TermKind `json:"base,omitempty" yaml:"base,omitempty"`
	Start    int      `json:"start" yaml:"start"`
	End      int      `json:"end" yaml:"end"`
	Interval int      `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// Field is the parsed constraint for one position of an expression.
// More than one term means a list with union semantics.
type Field struct {
	Type  FieldType `json:"-" yaml:"-"`
	Raw   string    `json:"raw" yaml:"raw"`
	Terms []Term    `json:"terms" yaml:"terms"`

	// bit i set means value i is allowed; weekday 7 is folded into 0
	bits uint64
}

// termPattern matches one list element: "*", "n" or "a-b", optionally followed by "/step".
var termPattern = re2.MustCompile(`^(\*|[0-9]+|[0-9]+-[0-9]+)(?:/([0-9]+))?$`)

// ValidateField reports whether raw is a legal value for the given field type.
func ValidateField(raw string, ft FieldType) bool {
	_, err := parseField(raw, ft)
	return err == nil
}

// parseField parses a single field into its terms
func parseField(raw string, ft FieldType) (Field, error) {
	if !ft.valid() {
		return Field{}, fmt.Errorf("unknown field type %d", int(ft))
	}
	if raw == "" {
		return Field{}, fmt.Errorf("empty %s field", ft)
	}

	f := Field{Type: ft, Raw: raw}
	for _, part := range strings.Split(raw, ",") {
		term, err := parseTerm(part, ft)
		if err != nil {
			return Field{}, err
		}
		f.Terms = append(f.Terms, term)
		f.bits |= term.bits(ft)
	}

	return f, nil
}

func parseTerm(part string, ft FieldType) (Term, error) {
	m := termPattern.FindStringSubmatch(part)
	if m == nil {
		return Term{}, fmt.Errorf("invalid %s value: %q", ft, part)
	}

	lo, hi := ft.Min(), ft.Max()
	var t Term

	switch {
	case m[1] == "*":
		t = Term{Kind: TermAny, Start: lo, End: hi}
	case strings.Contains(m[1], "-"):
		bounds := strings.SplitN(m[1], "-", 2)
		start, err := atoiInRange(bounds[0], ft)
		if err != nil {
			return Term{}, err
		}
		end, err := atoiInRange(bounds[1], ft)
		if err != nil {
			return Term{}, err
		}
		if start > end {
			return Term{}, fmt.Errorf("reversed %s range: %s", ft, m[1])
		}
		t = Term{Kind: TermRange, Start: start, End: end}
	default:
		n, err := atoiInRange(m[1], ft)
		if err != nil {
			return Term{}, err
		}
		t = Term{Kind: TermSingle, Start: n, End: n}
	}

	if m[2] == "" {
		return t, nil
	}

	interval, err := strconv.Atoi(m[2])
	if err != nil || interval <= 0 {
		return Term{}, fmt.Errorf("invalid %s step: %q", ft, part)
	}

	step := Term{Kind: TermStep, Base: t.Kind, Start: t.Start, End: t.End, Interval: interval}
	if t.Kind == TermSingle {
		// "a/n" runs from a up to the field maximum
		step.End = hi
	}
	return step, nil
}

func atoiInRange(s string, ft FieldType) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %q", ft, s)
	}
	if n < ft.Min() || n > ft.Max() {
		return 0, fmt.Errorf("%s value %d out of range (allowed %d-%d)", ft, n, ft.Min(), ft.Max())
	}
	return n, nil
}

// bits expands the term into a value bitset
func (t Term) bits(ft FieldType) uint64 {
	step := 1
	if t.Kind == TermStep {
		step = t.Interval
	}

	var b uint64
	for v := t.Start; v <= t.End; v += step {
		if ft == Weekday && v == 7 {
			b |= 1
		} else {
			b |= 1 << uint(v)
		}
		if step > t.End-v {
			break
		}
	}
	return b
}

// String re-serializes the term
func (t Term) String() string {
	var base string
	kind := t.Kind
	if kind == TermStep {
		kind = t.Base
	}

	switch kind {
	case TermAny:
		base = "*"
	case TermSingle:
		base = strconv.Itoa(t.Start)
	case TermRange:
		base = strconv.Itoa(t.Start) + "-" + strconv.Itoa(t.End)
	}

	if t.Kind == TermStep {
		return base + "/" + strconv.Itoa(t.Interval)
	}
	return base
}

// String re-serializes the field from its terms
func (f Field) String() string {
	parts := make([]string, len(f.Terms))
	for i, t := range f.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// Matches reports whether value v satisfies the field. For weekday fields
// both 0 and 7 are Sunday.
func (f Field) Matches(v int) bool {
	if f.Type == Weekday && v == 7 {
		v = 0
	}
	if v < 0 || v > 63 {
		return false
	}
	return f.bits&(1<<uint(v)) != 0
}

// Values returns the allowed values in ascending order. Weekday 7 is reported as 0.
func (f Field) Values() []int {
	var values []int
	for v := f.Type.Min(); v <= f.Type.Max(); v++ {
		if f.Type == Weekday && v == 7 {
			break
		}
		if f.bits&(1<<uint(v)) != 0 {
			values = append(values, v)
		}
	}
	return values
}

// IsList reports whether the field is a comma-separated union
func (f Field) IsList() bool {
	return len(f.Terms) > 1
}

// IsWildcard reports whether the field places no restriction: "*" or "*/1".
func (f Field) IsWildcard() bool {
	if len(f.Terms) != 1 {
		return false
	}
	t := f.Terms[0]
	return t.Kind == TermAny || (t.Kind == TermStep && t.Base == TermAny && t.Interval == 1)
}

// single returns the only value of a one-term single-value field
func (f Field) single() (int, bool) {
	if len(f.Terms) == 1 && f.Terms[0].Kind == TermSingle {
		return f.Terms[0].Start, true
	}
	return 0, false
}
