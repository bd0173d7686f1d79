// Package report renders ledger data and analytics views as text tables,
// JSON, YAML or CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fjacquet/pfma/internal/analytics"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/models"
	"fjacquet/pfma/internal/validation"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Options configures a Generator.
type Options struct {
	CurrencySymbol string
	Location       *time.Location
	Delimiter      rune
}

// Generator renders reports in the configured style.
type Generator struct {
	currency  string
	location  *time.Location
	delimiter rune
	logger    logging.Logger
}

// NewGenerator creates a Generator. Zero options fall back to "₹", the
// local zone and a comma delimiter.
func NewGenerator(opts Options, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	g := &Generator{
		currency:  opts.CurrencySymbol,
		location:  opts.Location,
		delimiter: opts.Delimiter,
		logger:    logger.WithField(logging.FieldComponent, "report"),
	}
	if g.currency == "" {
		g.currency = "₹"
	}
	if g.location == nil {
		g.location = time.Local
	}
	if g.delimiter == 0 {
		g.delimiter = ','
	}
	return g
}

// Transactions writes the transaction list, newest first.
func (g *Generator) Transactions(w io.Writer, snap models.Snapshot, format string) error {
	return g.render(w, format, "transactions", len(snap.Transactions),
		func() error { return g.transactionsText(w, snap) },
		func() interface{} { return snap.Transactions },
		func() interface{} { return g.transactionRows(snap.Transactions) })
}

// Categories writes the category list in declaration order.
func (g *Generator) Categories(w io.Writer, cats []models.Category, format string) error {
	return g.render(w, format, "categories", len(cats),
		func() error { return g.categoriesText(w, cats) },
		func() interface{} { return cats },
		func() interface{} { return categoryRows(cats) })
}

// Analytics writes one analytics view.
func (g *Generator) Analytics(w io.Writer, res analytics.Result, format string) error {
	return g.render(w, format, "analytics", len(res.Categories)+len(res.Months),
		func() error { return g.analyticsText(w, res) },
		func() interface{} { return res },
		func() interface{} { return g.analyticsRows(res) })
}

// Summary is the content of the summary card.
type Summary struct {
	TotalSpent   decimal.Decimal `json:"totalSpent" yaml:"total_spent"`
	Expenses     int             `json:"expenses" yaml:"expenses"`
	Transactions int             `json:"transactions" yaml:"transactions"`
}

// NewSummary computes the summary card for snap.
func NewSummary(snap models.Snapshot) Summary {
	return Summary{
		TotalSpent:   analytics.TotalSpent(snap),
		Expenses:     len(analytics.Expenses(snap.Transactions)),
		Transactions: len(snap.Transactions),
	}
}

// Summary writes the summary card.
func (g *Generator) Summary(w io.Writer, s Summary, format string) error {
	return g.render(w, format, "summary", 1,
		func() error { return g.summaryText(w, s) },
		func() interface{} { return s },
		func() interface{} { return []summaryRow{g.summaryRow(s)} })
}

// Shortcuts writes the money shortcut presets.
func (g *Generator) Shortcuts(w io.Writer, amounts []decimal.Decimal, format string) error {
	return g.render(w, format, "shortcuts", len(amounts),
		func() error { return g.shortcutsText(w, amounts) },
		func() interface{} { return amounts },
		func() interface{} { return shortcutRows(amounts) })
}

func (g *Generator) render(w io.Writer, format, what string, count int,
	text func() error, doc func() interface{}, rows func() interface{}) error {

	if format == "" {
		format = FormatText
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	g.logger.Debug("Rendering report",
		logging.F(logging.FieldView, what),
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldCount, count))

	switch format {
	case FormatJSON:
		return writeJSON(w, doc())
	case FormatYAML:
		return writeYAML(w, doc())
	case FormatCSV:
		return g.writeCSV(w, rows())
	default:
		return text()
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return nil
}

func (g *Generator) writeCSV(w io.Writer, rows interface{}) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// FormatAmount renders a signed amount with the currency symbol and two
// decimals, e.g. "-₹250.00".
func (g *Generator) FormatAmount(amount decimal.Decimal) string {
	sign := ""
	switch {
	case amount.IsNegative():
		sign = "-"
	case amount.IsPositive():
		sign = "+"
	}
	return sign + g.currency + amount.Abs().StringFixed(2)
}

// FormatTotal renders an unsigned total, e.g. "₹300.00".
func (g *Generator) FormatTotal(amount decimal.Decimal) string {
	return g.currency + amount.StringFixed(2)
}
