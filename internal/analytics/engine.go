// Package analytics derives spending views from a ledger snapshot. Every
// function is pure given the snapshot and the engine's clock.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/pfma/internal/dateutils"
	"fjacquet/pfma/internal/models"
)

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Name  string          `json:"name" yaml:"name" csv:"name"`
	Total decimal.Decimal `json:"total" yaml:"total" csv:"total"`
	Color string          `json:"color" yaml:"color" csv:"color"`
}

// MonthTotal is the expense total of one month of the year.
type MonthTotal struct {
	Month time.Month      `json:"-" yaml:"-" csv:"-"`
	Name  string          `json:"name" yaml:"name" csv:"name"`
	Total decimal.Decimal `json:"total" yaml:"total" csv:"total"`
}

// Query selects a view and, for the monthly view, a window.
type Query struct {
	View   View
	Window Window
}

// Result holds the output of Compute. Exactly one of Categories or Months
// is used, depending on View.
type Result struct {
	View       View            `json:"view" yaml:"view"`
	Window     Window          `json:"window,omitempty" yaml:"window,omitempty"`
	Categories []CategoryTotal `json:"categories,omitempty" yaml:"categories,omitempty"`
	Months     []MonthTotal    `json:"months,omitempty" yaml:"months,omitempty"`
}

// Empty reports whether the view has nothing to show.
func (r Result) Empty() bool {
	return len(r.Categories) == 0 && len(r.Months) == 0
}

// Max returns the largest bucket total, zero when empty.
func (r Result) Max() decimal.Decimal {
	largest := decimal.Zero
	for _, c := range r.Categories {
		if c.Total.GreaterThan(largest) {
			largest = c.Total
		}
	}
	for _, m := range r.Months {
		if m.Total.GreaterThan(largest) {
			largest = m.Total
		}
	}
	return largest
}

// Engine computes analytics views.
type Engine struct {
	now      func() time.Time
	location *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for window cutoffs.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the zone in which transaction dates are bucketed.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// NewEngine creates an Engine using the wall clock and the local zone
// unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now, location: time.Local}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the zone used for month bucketing.
func (e *Engine) Location() *time.Location {
	return e.location
}

// Expenses returns the transactions with a negative amount, in input order.
func Expenses(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.IsExpense() {
			out = append(out, t)
		}
	}
	return out
}

// TotalSpent sums the absolute amounts of all expenses.
func TotalSpent(snap models.Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, t := range Expenses(snap.Transactions) {
		total = total.Add(t.Amount.Abs())
	}
	return total
}

// CategoryTotals sums expenses per expense-typed category, in category
// declaration order. Categories with no spending are dropped and
// transactions whose category name matches no live category are ignored.
func CategoryTotals(snap models.Snapshot) []CategoryTotal {
	expenses := Expenses(snap.Transactions)

	out := []CategoryTotal{}
	for _, c := range snap.Categories {
		if c.Type != models.CategoryExpense {
			continue
		}
		total := decimal.Zero
		for _, t := range expenses {
			if t.Category == c.Name {
				total = total.Add(t.Amount.Abs())
			}
		}
		if total.IsZero() {
			continue
		}
		out = append(out, CategoryTotal{Name: c.Name, Total: total, Color: c.Color})
	}
	return out
}

// TopSpending returns CategoryTotals ordered by total, largest first. Ties
// keep category declaration order.
func TopSpending(snap models.Snapshot) []CategoryTotal {
	ranked := CategoryTotals(snap)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	return ranked
}

// MonthlySeries buckets expenses by month of year, merging years, and
// returns the non-empty months from January to December. With a window,
// only expenses dated at or after now minus the window are counted.
func (e *Engine) MonthlySeries(snap models.Snapshot, window Window) []MonthTotal {
	expenses := Expenses(snap.Transactions)

	var cutoff time.Time
	days := window.Days()
	if days > 0 {
		cutoff = dateutils.Cutoff(e.now(), days)
	}

	var buckets [13]decimal.Decimal
	var seen [13]bool
	for _, t := range expenses {
		if days > 0 && t.Date.Before(cutoff) {
			continue
		}
		m := t.Date.In(e.location).Month()
		buckets[m] = buckets[m].Add(t.Amount.Abs())
		seen[m] = true
	}

	out := []MonthTotal{}
	for m := time.January; m <= time.December; m++ {
		if !seen[m] {
			continue
		}
		out = append(out, MonthTotal{Month: m, Name: dateutils.MonthAbbrev(m), Total: buckets[m]})
	}
	return out
}

// Compute dispatches q to the matching view.
func (e *Engine) Compute(snap models.Snapshot, q Query) (Result, error) {
	view := q.View
	if view == "" {
		view = ViewCategory
	}
	switch view {
	case ViewTop:
		return Result{View: view, Categories: TopSpending(snap)}, nil
	case ViewCategory:
		return Result{View: view, Categories: CategoryTotals(snap)}, nil
	case ViewMonthly:
		window := q.Window
		if window == "" {
			window = WindowAll
		}
		return Result{View: view, Window: window, Months: e.MonthlySeries(snap, window)}, nil
	default:
		return Result{}, fmt.Errorf("unknown view %q", q.View)
	}
}
