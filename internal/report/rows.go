package report

import (
	"github.com/shopspring/decimal"

	"fjacquet/pfma/internal/analytics"
	"fjacquet/pfma/internal/dateutils"
	"fjacquet/pfma/internal/models"
)

// TransactionRow is the flat CSV shape of a transaction. Amounts stay
// signed and unformatted so the file can be re-read by spreadsheets.
type TransactionRow struct {
	ID       int64  `csv:"id"`
	Date     string `csv:"date"`
	Text     string `csv:"text"`
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
}

type categoryRow struct {
	ID    int64  `csv:"id"`
	Name  string `csv:"name"`
	Type  string `csv:"type"`
	Color string `csv:"color"`
}

type bucketRow struct {
	Name  string `csv:"name"`
	Total string `csv:"total"`
	Color string `csv:"color"`
}

type summaryRow struct {
	TotalSpent   string `csv:"total_spent"`
	Expenses     int    `csv:"expenses"`
	Transactions int    `csv:"transactions"`
}

type shortcutRow struct {
	Index  int    `csv:"index"`
	Amount string `csv:"amount"`
}

func (g *Generator) transactionRows(txs []models.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, TransactionRow{
			ID:       t.ID,
			Date:     dateutils.FormatDate(t.Date, g.location, dateutils.DateLayoutFull),
			Text:     t.Text,
			Category: t.Category,
			Amount:   t.Amount.StringFixed(2),
		})
	}
	return rows
}

func categoryRows(cats []models.Category) []categoryRow {
	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, categoryRow{ID: c.ID, Name: c.Name, Type: string(c.Type), Color: c.Color})
	}
	return rows
}

func (g *Generator) analyticsRows(res analytics.Result) []bucketRow {
	rows := make([]bucketRow, 0, len(res.Categories)+len(res.Months))
	for _, c := range res.Categories {
		rows = append(rows, bucketRow{Name: c.Name, Total: c.Total.StringFixed(2), Color: c.Color})
	}
	for _, m := range res.Months {
		rows = append(rows, bucketRow{Name: m.Name, Total: m.Total.StringFixed(2)})
	}
	return rows
}

func (g *Generator) summaryRow(s Summary) summaryRow {
	return summaryRow{
		TotalSpent:   s.TotalSpent.StringFixed(2),
		Expenses:     s.Expenses,
		Transactions: s.Transactions,
	}
}

func shortcutRows(amounts []decimal.Decimal) []shortcutRow {
	rows := make([]shortcutRow, 0, len(amounts))
	for i, a := range amounts {
		rows = append(rows, shortcutRow{Index: i + 1, Amount: a.String()})
	}
	return rows
}
