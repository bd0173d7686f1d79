// Package charts renders the analytics views
package charts

import (
	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/analytics"
	"fjacquet/pfma/internal/logging"
)

var (
	view   string
	window string
)

// Cmd represents the charts command
var Cmd = &cobra.Command{
	Use:   "charts",
	Short: "Chart spending by category, top category or month",
	Long: `Chart expense totals. The category view lists every category that has
expenses, the top view ranks them by amount and the monthly view shows the
months of the year that have expenses. --window limits the monthly view to the last
10, 20 or 30 days.`,
	Args: cobra.NoArgs,
	RunE: chartsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&view, "view", "v", string(analytics.ViewCategory), "View to show (top, category or monthly)")
	Cmd.Flags().StringVarP(&window, "window", "w", "", "Monthly window (all, 10d, 20d or 30d; default from config)")
}

func chartsFunc(cmd *cobra.Command, args []string) error {
	app, err := root.GetContainer()
	if err != nil {
		return err
	}
	format, err := root.OutputFormat()
	if err != nil {
		return err
	}

	q := analytics.Query{Window: app.GetConfig().Window()}
	if q.View, err = analytics.ParseView(view); err != nil {
		return err
	}
	if window != "" {
		if q.Window, err = analytics.ParseWindow(window); err != nil {
			return err
		}
	}

	res, err := app.GetEngine().Compute(app.GetLedger().Snapshot(), q)
	if err != nil {
		return err
	}
	app.GetLogger().Debug("Analytics computed",
		logging.F(logging.FieldView, res.View),
		logging.F(logging.FieldWindow, q.Window))
	return app.GetGenerator().Analytics(cmd.OutOrStdout(), res, format)
}
