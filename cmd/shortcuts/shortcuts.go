// Package shortcuts manages the money shortcut presets used by add --shortcut
package shortcuts

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/models"
	"fjacquet/pfma/internal/store"
)

// Cmd represents the shortcuts command
var Cmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Manage money shortcut presets",
	Long: fmt.Sprintf(`Manage up to %d preset amounts. A preset can be used as the amount of a
new expense with "pfma add --shortcut N".`, store.MaxShortcuts),
}

// ListCmd prints the presets, numbered from 1.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List money shortcuts",
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
		return app.GetGenerator().Shortcuts(cmd.OutOrStdout(), app.GetShortcuts().List(), format)
	},
}

// AddCmd appends a preset.
var AddCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Add a money shortcut",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.GetContainer()
		if err != nil {
			return err
		}
		amount, err := models.ParseAmount(args[0])
		if err != nil {
			return err
		}
		if err := app.GetShortcuts().Add(amount); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added money shortcut %s\n", amount.String())
		return nil
	},
}

// RemoveCmd deletes a preset by its 1-based position.
var RemoveCmd = &cobra.Command{
	Use:   "remove INDEX",
	Short: "Remove a money shortcut by number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.GetContainer()
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid shortcut number %q", args[0])
		}
		if err := app.GetShortcuts().Remove(n - 1); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed money shortcut %d\n", n)
		return nil
	},
}

func init() {
	Cmd.AddCommand(ListCmd, AddCmd, RemoveCmd)
}
