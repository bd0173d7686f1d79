// Package export writes the transaction list to a CSV or JSON file
package export

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/fileutils"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/models"
	"fjacquet/pfma/internal/validation"
)

var (
	format string
	output string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions as CSV or JSON",
	Long: `Export every transaction, newest first, as CSV or JSON. Without -o the
export is written to standard output.`,
	Args: cobra.NoArgs,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format (csv or json)")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: standard output)")
}

func exportFunc(cmd *cobra.Command, args []string) (err error) {
	if err := validation.IsValidExportFormat(format); err != nil {
		return err
	}
	app, err := root.GetContainer()
	if err != nil {
		return err
	}
	snap := app.GetLedger().Snapshot()

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		file, ferr := fileutils.CreateFile(output, models.PermissionDirectory)
		if ferr != nil {
			return fmt.Errorf("failed to create export file: %w", ferr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close export file: %w", cerr)
			}
		}()
		if cerr := file.Chmod(models.PermissionExport); cerr != nil {
			return fmt.Errorf("failed to set export file permissions: %w", cerr)
		}
		w = file
	}

	if err := app.GetGenerator().Transactions(w, snap, format); err != nil {
		return err
	}

	if output != "" {
		app.GetLogger().Info("Transactions exported",
			logging.F(logging.FieldPath, output),
			logging.F(logging.FieldFormat, format),
			logging.F(logging.FieldCount, len(snap.Transactions)))
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d transactions to %s\n", len(snap.Transactions), output)
	}
	return nil
}
