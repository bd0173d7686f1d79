// Package calc evaluates arithmetic expressions
package calc

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/pfma/internal/calculator"
)

// Cmd represents the calc command
var Cmd = &cobra.Command{
	Use:   "calc EXPRESSION",
	Short: "Evaluate an arithmetic expression",
	Long: `Evaluate an expression with + - * / % (× and ÷ are accepted too) and
parentheses, e.g. pfma calc "1250 / 4 + 12.5".`,
	Args: cobra.MinimumNArgs(1),
	// The calculator needs no ledger.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := calculator.Evaluate(strings.Join(args, " "))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), calculator.Format(result))
		return err
	},
}
