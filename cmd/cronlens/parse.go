package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/cron"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Show the parsed structure of a cron expression",
	Long:  `Parse prints every field of an expression with its terms and the concrete values it allows.`,
	Args:  cobra.RangeArgs(1, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := cron.Parse(expressionArg(args))
		if err != nil {
			return err
		}

		r, err := newRenderer(cmd, time.Time{})
		if err != nil {
			return err
		}
		return r.Expression(expr)
	},
}
