package charts

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/pfma/cmd/cmdtest"
	"fjacquet/pfma/internal/container"
	"fjacquet/pfma/internal/models"
	"fjacquet/pfma/internal/report"
)

func resetFlags() {
	view, window = "category", ""
}

func seed(t *testing.T, c *container.Container) {
	t.Helper()
	ledger := c.GetLedger()
	for i, tx := range []models.Transaction{
		{Text: "Groceries", Amount: decimal.NewFromInt(-100), Category: "Food"},
		{Text: "Rent", Amount: decimal.NewFromInt(-900), Category: "Rent"},
		{Text: "Dinner", Amount: decimal.NewFromInt(-50), Category: "Food"},
		{Text: "Pay", Amount: decimal.NewFromInt(3000), Category: "Salary"},
	} {
		tx.ID = int64(i + 1)
		tx.Date = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
		require.NoError(t, ledger.AddTransaction(tx))
	}
}

type chartJSON struct {
	View       string `json:"view"`
	Window     string `json:"window"`
	Categories []struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	} `json:"categories"`
	Months []struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	} `json:"months"`
}

func run(t *testing.T) chartJSON {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	var got chartJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	return got
}

func TestChartsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "charts", Cmd.Use)
	assert.Contains(t, Cmd.Long, "monthly view")

	viewFlag := Cmd.Flags().Lookup("view")
	require.NotNil(t, viewFlag)
	assert.Equal(t, "category", viewFlag.DefValue)

	windowFlag := Cmd.Flags().Lookup("window")
	require.NotNil(t, windowFlag)
	assert.Equal(t, "w", windowFlag.Shorthand)
}

func TestChartsCommand_Views(t *testing.T) {
	c := cmdtest.NewContainer(t)
	seed(t, c)
	cmdtest.WithFormat(t, "json")
	defer resetFlags()

	view = "category"
	got := run(t)
	assert.Equal(t, "category", got.View)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Food", got.Categories[0].Name)
	assert.Equal(t, 150.0, got.Categories[0].Total)

	view = "top"
	got = run(t)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Rent", got.Categories[0].Name)

	view = "monthly"
	got = run(t)
	assert.Equal(t, "all", got.Window)
	require.Len(t, got.Months, 1)
	assert.Equal(t, "Feb", got.Months[0].Name)
	assert.Equal(t, 1050.0, got.Months[0].Total)
}

func TestChartsCommand_WindowFromConfig(t *testing.T) {
	cfg := cmdtest.Config()
	cfg.Analytics.DefaultWindow = "30d"
	c := cmdtest.NewContainerWithConfig(t, cfg)
	seed(t, c)
	cmdtest.WithFormat(t, "json")
	defer resetFlags()

	view = "monthly"
	got := run(t)
	assert.Equal(t, "30d", got.Window)
	assert.Empty(t, got.Months)

	window = "all"
	got = run(t)
	assert.Equal(t, "all", got.Window)
	assert.Len(t, got.Months, 1)
}

func TestChartsCommand_EmptyText(t *testing.T) {
	cmdtest.NewContainer(t)
	cmdtest.WithFormat(t, "text")
	defer resetFlags()

	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Contains(t, out.String(), report.NoExpensesMessage)
}

func TestChartsCommand_InvalidFlags(t *testing.T) {
	cmdtest.NewContainer(t)
	defer resetFlags()

	view = "pie"
	assert.Error(t, Cmd.RunE(Cmd, nil))

	view, window = "monthly", "7d"
	assert.Error(t, Cmd.RunE(Cmd, nil))
}
