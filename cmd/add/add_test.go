package add

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/pfma/cmd/cmdtest"
	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/entry"
)

func resetFlags() {
	description, amount, category, shortcut = "", "", "", 0
}

func TestAddCommand_Metadata(t *testing.T) {
	assert.Equal(t, "add", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Record an expense")
	assert.Contains(t, Cmd.Long, "stored as money spent")
	assert.NotNil(t, Cmd.RunE)
}

func TestAddCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"description", "d"},
		{"amount", "a"},
		{"category", "c"},
		{"shortcut", "s"},
	}
	for _, tt := range tests {
		flag := Cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand)
	}
}

func TestAddCommand_RecordsExpense(t *testing.T) {
	c := cmdtest.NewContainer(t)
	defer resetFlags()
	description, amount, category = "Coffee", "40", "Food"

	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))

	assert.Equal(t, "Added Coffee -₹40.00 (Food)\n", out.String())
	snap := c.GetLedger().Snapshot()
	require.Len(t, snap.Transactions, 1)
	assert.True(t, snap.Transactions[0].Amount.Equal(decimal.NewFromInt(-40)))
}

func TestAddCommand_MissingFields(t *testing.T) {
	c := cmdtest.NewContainer(t)
	defer resetFlags()
	description, amount = "Coffee", "40"

	err := Cmd.RunE(Cmd, nil)
	require.Error(t, err)
	assert.Equal(t, entry.MissingFieldsMessage, err.Error())
	assert.Empty(t, c.GetLedger().Snapshot().Transactions)
}

func TestAddCommand_Shortcut(t *testing.T) {
	c := cmdtest.NewContainer(t)
	defer resetFlags()
	require.NoError(t, c.GetShortcuts().Add(decimal.NewFromInt(250)))
	description, category, shortcut = "Lunch", "Food", 1

	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Contains(t, out.String(), "-₹250.00")

	shortcut = 2
	err := Cmd.RunE(Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "money shortcut 2")
}

func TestAddCommand_NoContainer(t *testing.T) {
	root.SetContainer(nil)
	assert.ErrorIs(t, Cmd.RunE(Cmd, nil), root.ErrNoContainer)
}
