// Package categories manages income and expense categories
package categories

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/models"
)

var (
	categoryType string
	color        string
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "List, add or delete categories",
	Long: `List, add or delete categories. Transactions keep their category name
when the category is deleted and are shown as uncategorized.`,
}

// ListCmd prints every category in declaration order.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
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
		return app.GetGenerator().Categories(cmd.OutOrStdout(), app.GetLedger().Snapshot().Categories, format)
	},
}

// AddCmd creates a category.
var AddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  addFunc,
}

// DeleteCmd removes a category by id.
var DeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a category by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.GetContainer()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[0])
		}
		if err := app.GetLedger().DeleteCategory(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", id)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&categoryType, "type", "t", string(models.CategoryExpense), "Category type (income or expense)")
	AddCmd.Flags().StringVar(&color, "color", "", "Hex colour, e.g. #EF4444 (default: random palette colour)")
	Cmd.AddCommand(ListCmd, AddCmd, DeleteCmd)
}

func addFunc(cmd *cobra.Command, args []string) error {
	app, err := root.GetContainer()
	if err != nil {
		return err
	}
	ledger := app.GetLedger()

	name := strings.TrimSpace(args[0])
	if existing, ok := ledger.FindCategoryByName(name); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Category %s already exists\n", existing.Name)
		return nil
	}

	ct, err := models.ParseCategoryType(categoryType)
	if err != nil {
		return err
	}

	c := models.Category{
		ID:    ledger.NextCategoryID(),
		Name:  name,
		Type:  ct,
		Color: color,
	}
	if c.Color == "" {
		c.Color = models.CategoryPalette[rand.Intn(len(models.CategoryPalette))]
	}
	if err := ledger.AddCategory(c); err != nil {
		return err
	}

	app.GetLogger().Debug("Category added", logging.F(logging.FieldCategoryID, c.ID))
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s category %s (id %d)\n", c.Type, c.Name, c.ID)
	return nil
}
