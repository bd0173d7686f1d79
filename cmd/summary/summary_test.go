package summary

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

func TestSummaryCommand_Metadata(t *testing.T) {
	assert.Equal(t, "summary", Cmd.Use)
	assert.Contains(t, Cmd.Short, "total amount spent")
	assert.NotNil(t, Cmd.RunE)
}

func TestSummaryCommand_Text(t *testing.T) {
	c := cmdtest.NewContainer(t)
	cmdtest.WithFormat(t, "text")

	ledger := c.GetLedger()
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.AddTransaction(models.Transaction{ID: 1, Text: "Tea", Amount: decimal.RequireFromString("-12.5"), Category: "Food", Date: date}))
	require.NoError(t, ledger.AddTransaction(models.Transaction{ID: 2, Text: "Pay", Amount: decimal.NewFromInt(500), Category: "Salary", Date: date}))

	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))

	assert.Contains(t, out.String(), "Total spent:")
	assert.Contains(t, out.String(), "₹12.50")
	assert.Contains(t, out.String(), "1 expenses across 2 transactions")
}

func TestSummaryCommand_YAML(t *testing.T) {
	cmdtest.NewContainer(t)
	cmdtest.WithFormat(t, "yaml")

	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Contains(t, out.String(), "expenses: 0")
	assert.Contains(t, out.String(), "transactions: 0")
}
