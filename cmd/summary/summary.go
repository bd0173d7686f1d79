// Package summary prints the total spent card
package summary

import (
	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/report"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the total amount spent",
	Long:  `Show the total amount spent across all expense transactions.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.GetContainer()
		if err != nil {
			return err
		}
		format, err := root.OutputFormat()
		if err != nil {
			return err
		}
		return app.GetGenerator().Summary(cmd.OutOrStdout(), report.NewSummary(app.GetLedger().Snapshot()), format)
	},
}
