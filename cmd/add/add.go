// Package add records an expense from the command line
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/entry"
	"fjacquet/pfma/internal/logging"
)

var (
	description string
	amount      string
	category    string
	shortcut    int
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Long: `Record an expense with a description, an amount and a category.
The amount is always stored as money spent. A category that does not exist
yet is created as an expense category.`,
	Args: cobra.NoArgs,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "What the money was spent on")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount spent, e.g. 250 or ₹12,50")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Category name")
	Cmd.Flags().IntVarP(&shortcut, "shortcut", "s", 0, "Use money shortcut N (1-based) as the amount")
}

func addFunc(cmd *cobra.Command, args []string) error {
	app, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := app.GetLogger()

	form := entry.Form{Text: description, Amount: amount, Category: category}
	if shortcut > 0 {
		preset, err := app.GetShortcuts().At(shortcut - 1)
		if err != nil {
			return fmt.Errorf("money shortcut %d: %w", shortcut, err)
		}
		form.Amount = preset.String()
	}

	t, err := app.GetSubmitter().Submit(form)
	if err != nil {
		logger.WithError(err).Debug("Expense rejected")
		return err
	}

	gen := app.GetGenerator()
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", t.Text, gen.FormatAmount(t.Amount), t.Category)
	logger.Debug("Add command finished", logging.F(logging.FieldTransactionID, t.ID))
	return nil
}
