package reset

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/pfma/cmd/cmdtest"
	"fjacquet/pfma/internal/models"
)

func TestResetCommand_Metadata(t *testing.T) {
	assert.Equal(t, "reset", Cmd.Use)
	assert.Contains(t, Cmd.Long, "cannot be undone")

	yesFlag := Cmd.Flags().Lookup("yes")
	require.NotNil(t, yesFlag)
	assert.Equal(t, "y", yesFlag.Shorthand)
	assert.Equal(t, "false", yesFlag.DefValue)
}

func TestResetCommand(t *testing.T) {
	c := cmdtest.NewContainer(t)
	defer func() { confirmed = false }()

	assert.ErrorIs(t, Cmd.RunE(Cmd, nil), ErrNothingToClear)

	ledger := c.GetLedger()
	require.NoError(t, ledger.AddCategory(models.Category{ID: 6, Name: "Gym", Type: models.CategoryExpense, Color: "#EC4899"}))
	require.NoError(t, ledger.AddTransaction(models.Transaction{
		ID: 1, Text: "Membership", Amount: decimal.NewFromInt(-60), Category: "Gym",
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, c.GetShortcuts().Add(decimal.NewFromInt(50)))

	confirmed = false
	assert.ErrorIs(t, Cmd.RunE(Cmd, nil), ErrNotConfirmed)
	assert.Len(t, ledger.Snapshot().Transactions, 1)

	confirmed = true
	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Equal(t, "All data cleared.\n", out.String())

	snap := ledger.Snapshot()
	assert.Empty(t, snap.Transactions)
	assert.Equal(t, models.DefaultCategories(), snap.Categories)
	assert.Empty(t, c.GetShortcuts().List())
}
