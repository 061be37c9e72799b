package cron

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aatumaykin/cronlens/internal/locale"
)

// Type classifies a description result
type Type string

const (
	TypeEveryMinute Type = "everyMinute"
	TypeEveryHour   Type = "everyHour"
	TypeEveryDay    Type = "everyDay"
	TypeEveryWeek   Type = "everyWeek"
	TypeEveryMonth  Type = "everyMonth"
	TypeCustom      Type = "custom"
	TypeError       Type = "error"
)

// Result is a localized description of an expression
type Result struct {
	Text string `json:"text" yaml:"text"`
	Type Type   `json:"type" yaml:"type"`
}

type canonicalPattern struct {
	typ Type
	key locale.Key
}

// canonical patterns are matched on the whitespace-normalized expression
var canonical = map[string]canonicalPattern{
	"* * * * *": {TypeEveryMinute, locale.EveryMinute},
	"0 * * * *": {TypeEveryHour, locale.EveryHour},
	"0 0 * * *": {TypeEveryDay, locale.EveryDay},
	"0 0 * * 0": {TypeEveryWeek, locale.EveryWeek},
	"0 0 1 * *": {TypeEveryMonth, locale.EveryMonth},
}

// Normalize collapses runs of whitespace into single spaces and trims the ends.
func Normalize(expr string) string {
	return strings.Join(strings.Fields(expr), " ")
}

// Describe returns a human-readable description of expr in the given locale
// ("en" or "zh"; anything else falls back to English). Invalid expressions
// produce a TypeError result rather than an error.
func Describe(expr, lang string) Result {
	loc := locale.Resolve(lang)
	normalized := Normalize(expr)

	if p, ok := canonical[normalized]; ok {
		return Result{Text: locale.Text(loc, p.key), Type: p.typ}
	}

	parsed, err := Parse(normalized)
	if err != nil {
		return Result{Text: locale.Text(loc, locale.InvalidExpression), Type: TypeError}
	}

	return Result{Text: describeFields(parsed, loc), Type: TypeCustom}
}

// Explanation combines the description of an expression with its upcoming runs
type Explanation struct {
	Expression string      `json:"expression" yaml:"expression"`
	Result     Result      `json:"result" yaml:"result"`
	Next       []time.Time `json:"next" yaml:"next"`
}

// Explain describes expr and, when it is valid, estimates its next count runs after from.
func Explain(expr, lang string, from time.Time, count int, est Estimator) Explanation {
	out := Explanation{
		Expression: Normalize(expr),
		Result:     Describe(expr, lang),
		Next:       []time.Time{},
	}
	if out.Result.Type == TypeError {
		return out
	}

	parsed, err := Parse(expr)
	if err != nil {
		return out
	}
	out.Next = est.NextRuns(parsed, from, count)
	return out
}

func describeFields(e *Expression, loc locale.Locale) string {
	var fragments []string

	minute, minOK := e.Minute.single()
	hour, hourOK := e.Hour.single()
	if minOK && hourOK {
		fragments = append(fragments, fmt.Sprintf(locale.Text(loc, locale.AtClock), hour, minute))
	} else {
		fragments = append(fragments, describeField(e.Minute, loc), describeField(e.Hour, loc))
	}

	dom := e.DayOfMonth
	dow := e.Weekday
	switch {
	case !dom.IsWildcard() && !dow.IsWildcard():
		fragments = append(fragments, describeField(dom, loc)+locale.Text(loc, locale.Or)+describeField(dow, loc))
	case !dow.IsWildcard():
		fragments = append(fragments, describeField(dow, loc))
	default:
		fragments = append(fragments, describeField(dom, loc))
	}

	if !e.Month.IsWildcard() {
		fragments = append(fragments, describeField(e.Month, loc))
	}

	text := strings.Join(fragments, locale.Text(loc, locale.FragmentSep))
	if loc == locale.English {
		text = strings.ToUpper(text[:1]) + text[1:]
	}
	return text
}

// fieldTemplates holds the message keys for each shape a field can take.
// Month and weekday have no Any template: their wildcard is left out of the sentence.
type fieldTemplates struct {
	any, single, rng, step, stepFrom, list locale.Key
	hasAny                                 bool
}

var templates = map[FieldType]fieldTemplates{
	Minute:     {locale.MinuteAny, locale.MinuteSingle, locale.MinuteRange, locale.MinuteStep, locale.MinuteStepFrom, locale.MinuteList, true},
	Hour:       {locale.HourAny, locale.HourSingle, locale.HourRange, locale.HourStep, locale.HourStepFrom, locale.HourList, true},
	DayOfMonth: {locale.DayAny, locale.DaySingle, locale.DayRange, locale.DayStep, locale.DayStepFrom, locale.DayList, true},
	Month:      {0, locale.MonthSingle, locale.MonthRange, locale.MonthStep, locale.MonthStepFrom, locale.MonthList, false},
	Weekday:    {0, locale.WeekdaySingle, locale.WeekdayRange, locale.WeekdayStep, locale.WeekdayStepFrom, locale.WeekdayList, false},
}

func describeField(f Field, loc locale.Locale) string {
	tpl := templates[f.Type]

	if f.IsList() {
		items := make([]string, len(f.Terms))
		for i, t := range f.Terms {
			items[i] = describeItem(f.Type, t, loc)
		}
		return fmt.Sprintf(locale.Text(loc, tpl.list), joinList(items, loc))
	}

	t := f.Terms[0]
	switch {
	case f.IsWildcard():
		if tpl.hasAny {
			return locale.Text(loc, tpl.any)
		}
		return ""
	case t.Kind == TermSingle:
		return fmt.Sprintf(locale.Text(loc, tpl.single), valueArg(f.Type, t.Start, loc))
	case t.Kind == TermRange:
		return fmt.Sprintf(locale.Text(loc, tpl.rng), valueArg(f.Type, t.Start, loc), valueArg(f.Type, t.End, loc))
	case t.Kind == TermStep && t.Base == TermAny:
		return fmt.Sprintf(locale.Text(loc, tpl.step), t.Interval)
	case t.Kind == TermStep:
		return fmt.Sprintf(locale.Text(loc, tpl.stepFrom), t.Interval, valueArg(f.Type, t.Start, loc), valueArg(f.Type, t.End, loc))
	default:
		return f.Raw
	}
}

// describeItem renders one element of a list field
func describeItem(ft FieldType, t Term, loc locale.Locale) string {
	switch t.Kind {
	case TermAny:
		return "*"
	case TermSingle:
		return valueName(ft, t.Start, loc)
	case TermRange:
		return fmt.Sprintf(locale.Text(loc, locale.ItemRange), valueName(ft, t.Start, loc), valueName(ft, t.End, loc))
	default:
		return fmt.Sprintf(locale.Text(loc, locale.ItemStep), t.Interval, valueName(ft, t.Start, loc), valueName(ft, t.End, loc))
	}
}

// valueArg returns the value as a name for months and weekdays and as an int otherwise,
// so numeric templates can keep their %d verbs.
func valueArg(ft FieldType, v int, loc locale.Locale) any {
	switch ft {
	case Month, Weekday:
		return valueName(ft, v, loc)
	default:
		return v
	}
}

func valueName(ft FieldType, v int, loc locale.Locale) string {
	switch ft {
	case Month:
		return locale.MonthName(loc, v)
	case Weekday:
		return locale.WeekdayName(loc, v)
	default:
		return strconv.Itoa(v)
	}
}

func joinList(items []string, loc locale.Locale) string {
	if len(items) == 1 {
		return items[0]
	}
	head := strings.Join(items[:len(items)-1], locale.Text(loc, locale.ListSep))
	return head + locale.Text(loc, locale.ListLast) + items[len(items)-1]
}
