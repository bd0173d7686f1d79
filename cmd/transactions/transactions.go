// Package transactions lists and deletes recorded transactions
package transactions

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/logging"
)

// Cmd represents the transactions command
var Cmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List or delete transactions",
	Long:    `List recorded transactions newest first, or delete one by id.`,
}

// ListCmd prints every transaction.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
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
		return app.GetGenerator().Transactions(cmd.OutOrStdout(), app.GetLedger().Snapshot(), format)
	},
}

// DeleteCmd removes a transaction by id.
var DeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.GetContainer()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid transaction id %q", args[0])
		}

		ledger := app.GetLedger()
		if !ledger.HasTransaction(id) {
			app.GetLogger().Debug("Transaction not found", logging.F(logging.FieldTransactionID, id))
			fmt.Fprintf(cmd.OutOrStdout(), "No transaction with id %d\n", id)
			return nil
		}
		if err := ledger.DeleteTransaction(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", id)
		return nil
	},
}

func init() {
	Cmd.AddCommand(ListCmd, DeleteCmd)
}
