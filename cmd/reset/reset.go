// Package reset clears every stored record
package reset

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
)

var (
	// ErrNothingToClear is returned when the ledger holds no transactions.
	ErrNothingToClear = errors.New("there is no data to clear")
	// ErrNotConfirmed is returned when --yes was not given.
	ErrNotConfirmed = errors.New("this deletes all transactions, categories and money shortcuts; rerun with --yes to confirm")
)

var confirmed bool

// Cmd represents the reset command
var Cmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all data",
	Long: `Delete every transaction, category and money shortcut and restore the
default categories. This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.GetContainer()
		if err != nil {
			return err
		}
		ledger := app.GetLedger()
		if len(ledger.Snapshot().Transactions) == 0 {
			return ErrNothingToClear
		}
		if !confirmed {
			return ErrNotConfirmed
		}
		if err := ledger.Reset(); err != nil {
			return err
		}
		app.GetLogger().Info("All data cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm deleting all data")
}
