// Package render writes engine results as text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/locale"
)

// Format is an output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// TimeLayout is used for timestamps in text output
const TimeLayout = "2006-01-02 15:04 Mon MST"

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (expected: text, json, yaml)", s)
	}
}

// FieldCheck is the validation outcome of one field
type FieldCheck struct {
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
	Valid bool   `json:"valid" yaml:"valid"`
}

// Renderer writes results to w in the configured format
type Renderer struct {
	w      io.Writer
	format Format
	locale locale.Locale
	now    time.Time
}

// New creates a renderer. now is the reference for relative times in text output.
func New(w io.Writer, format Format, loc locale.Locale, now time.Time) *Renderer {
	return &Renderer{w: w, format: format, locale: loc, now: now}
}

// Explanation writes a description together with its upcoming runs
func (r *Renderer) Explanation(e cron.Explanation) error {
	if r.format != FormatText {
		return r.encode(e)
	}

	if _, err := fmt.Fprintf(r.w, "%s\n", e.Result.Text); err != nil {
		return err
	}
	if e.Result.Type == cron.TypeError {
		return nil
	}
	if _, err := fmt.Fprintf(r.w, "type: %s\n", e.Result.Type); err != nil {
		return err
	}
	return r.writeRuns(e.Next)
}

// Runs writes the upcoming runs of an expression
func (r *Renderer) Runs(expr string, runs []time.Time) error {
	if r.format != FormatText {
		return r.encode(struct {
			Expression string      `json:"expression" yaml:"expression"`
			Next       []time.Time `json:"next" yaml:"next"`
		}{expr, runs})
	}

	return r.writeRuns(runs)
}

// Expression writes the parsed structure of an expression
func (r *Renderer) Expression(expr *cron.Expression) error {
	if r.format != FormatText {
		return r.encode(struct {
			Expression string           `json:"expression" yaml:"expression"`
			Fields     *cron.Expression `json:"fields" yaml:"fields"`
		}{expr.String(), expr})
	}

	for _, f := range expr.Fields() {
		terms := make([]string, len(f.Terms))
		for i, t := range f.Terms {
			terms[i] = t.Kind.String()
		}
		if _, err := fmt.Fprintf(r.w, "%-8s %-12s %-20s %v\n", f.Type, f.Raw, strings.Join(terms, ","), f.Values()); err != nil {
			return err
		}
	}
	return nil
}

// FieldChecks writes per-field validation results
func (r *Renderer) FieldChecks(checks []FieldCheck) error {
	if r.format != FormatText {
		return r.encode(checks)
	}

	for _, c := range checks {
		mark := "ok"
		if !c.Valid {
			mark = "invalid"
		}
		if _, err := fmt.Fprintf(r.w, "%-8s %-12s %s\n", c.Field, c.Value, mark); err != nil {
			return err
		}
	}
	return nil
}

// Fire writes one line for a watcher firing
func (r *Renderer) Fire(name string, at time.Time) error {
	if r.format != FormatText {
		return r.encode(struct {
			Name string    `json:"name" yaml:"name"`
			At   time.Time `json:"at" yaml:"at"`
		}{name, at})
	}
	_, err := fmt.Fprintf(r.w, "%s  %s\n", at.Format(TimeLayout), name)
	return err
}

func (r *Renderer) writeRuns(runs []time.Time) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintf(r.w, "%s\n", locale.Text(r.locale, locale.NoUpcomingRuns))
		return err
	}
	for i, t := range runs {
		line := fmt.Sprintf("%2d. %s", i+1, t.Format(TimeLayout))
		if r.locale == locale.English && !r.now.IsZero() {
			line += "  (" + humanize.RelTime(t, r.now, "ago", "from now") + ")"
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}
