package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/constants"
	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/messages"
	"github.com/aatumaykin/cronlens/internal/render"
)

var validateField string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <expression>",
	Short: "Validate a cron expression or a single field",
	Long: `Validate checks every field of a cron expression and reports which
ones are invalid. With --field it validates one value for a single
field type (minute, hour, day, month, weekday).`,
	Example: `  cronlens validate "0 9 * * 1-5"
  cronlens validate --field minute "*/5"`,
	Args: cobra.RangeArgs(1, 5),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateField, "field", "f", "", "validate a single field of this type")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateField != "" {
		return runValidateField(cmd, args)
	}

	expr := expressionArg(args)
	checks := fieldChecks(expr)

	r, err := newRenderer(cmd, time.Time{})
	if err != nil {
		return err
	}
	if err := r.FieldChecks(checks); err != nil {
		return err
	}

	if _, err := cron.Parse(expr); err != nil {
		if rootOutput == string(render.FormatText) {
			fmt.Fprintf(cmd.OutOrStdout(), constants.MsgExpressionInvalid, err)
		}
		return err
	}
	if rootOutput == string(render.FormatText) {
		fmt.Fprint(cmd.OutOrStdout(), constants.MsgExpressionValid)
	}
	return nil
}

func runValidateField(cmd *cobra.Command, args []string) error {
	ft, err := cron.ParseFieldType(validateField)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("--field expects exactly one value, got %d", len(args))
	}

	value := args[0]
	valid := cron.ValidateField(value, ft)
	fmt.Fprint(cmd.OutOrStdout(), messages.FormatFieldCheck(value, ft.String(), valid))
	if !valid {
		return fmt.Errorf("invalid %s value: %q", ft, value)
	}
	return nil
}

// fieldChecks validates each whitespace-separated token against its
// positional field type. Tokens beyond the fifth are reported as invalid.
func fieldChecks(expr string) []render.FieldCheck {
	tokens := strings.Fields(expr)
	checks := make([]render.FieldCheck, 0, len(cron.FieldTypes))

	for i, ft := range cron.FieldTypes {
		check := render.FieldCheck{Field: ft.String()}
		if i < len(tokens) {
			check.Value = tokens[i]
			check.Valid = cron.ValidateField(tokens[i], ft)
		}
		checks = append(checks, check)
	}
	for _, extra := range tokens[min(len(tokens), len(cron.FieldTypes)):] {
		checks = append(checks, render.FieldCheck{Field: "extra", Value: extra})
	}
	return checks
}
