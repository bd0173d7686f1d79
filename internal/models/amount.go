package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyAmount is returned when the amount input is blank.
	ErrEmptyAmount = errors.New("amount is empty")
	// ErrInvalidAmount is returned when the input is not a number.
	ErrInvalidAmount = errors.New("amount is not a number")
	// ErrZeroAmount is returned when the input parses to zero.
	ErrZeroAmount = errors.New("amount must not be zero")
)

var currencyMarks = []string{"₹", "$", "€", "£", "INR", "CHF", "EUR", "USD", "'", " "}

// ParseAmount parses user input into a non-zero decimal. A comma is
// accepted as decimal separator; currency marks and apostrophe thousand
// separators are ignored.
func ParseAmount(input string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(input)
	if amount == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	for _, mark := range currencyMarks {
		amount = strings.ReplaceAll(amount, mark, "")
	}
	amount = strings.ReplaceAll(amount, ",", ".")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if dec.IsZero() {
		return decimal.Zero, ErrZeroAmount
	}
	return dec, nil
}

// ExpenseAmount returns -|amount|.
func ExpenseAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Abs().Neg()
}
