package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry. Negative amounts are expenses,
// positive amounts are income. Category holds a category name, not an id.
type Transaction struct {
	ID       int64           `json:"id" yaml:"id" csv:"id"`
	Text     string          `json:"text" yaml:"text" csv:"text" validate:"required"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
	Category string          `json:"category" yaml:"category" csv:"category" validate:"required"`
	Date     time.Time       `json:"date" yaml:"date" csv:"date" validate:"required"`
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Equal compares two transactions field by field, using numeric equality
// for the amount and instant equality for the date.
func (t Transaction) Equal(other Transaction) bool {
	return t.ID == other.ID &&
		t.Text == other.Text &&
		t.Category == other.Category &&
		t.Amount.Equal(other.Amount) &&
		t.Date.Equal(other.Date)
}
