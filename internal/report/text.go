package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"fjacquet/pfma/internal/analytics"
	"fjacquet/pfma/internal/dateutils"
	"fjacquet/pfma/internal/models"
)

// BarWidth is the width of the largest bar in analytics charts.
const BarWidth = 30

const (
	colorHeader  = "86"
	colorMuted   = "241"
	colorExpense = "#DC2626"
)

// Empty-state copy
const (
	NoTransactionsMessage = "No transactions found."
	NoExpensesMessage     = "No expenses found"
	NoExpensesHint        = "Add an expense transaction to see analytics."
	NoShortcutsMessage    = "No money shortcuts yet."
	// UncategorizedSuffix marks transactions whose category name matches no
	// live category exactly.
	UncategorizedSuffix = " (uncategorized)"
)

type styles struct {
	header lipgloss.Style
	title  lipgloss.Style
	muted  lipgloss.Style
	r      *lipgloss.Renderer
}

// stylesFor builds styles bound to w, so colour is only emitted when w is
// a terminal.
func stylesFor(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHeader)),
		title:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		r:      r,
	}
}

func (s styles) color(hex string) lipgloss.Style {
	return s.r.NewStyle().Foreground(lipgloss.Color(hex))
}

// table lays out rows with tabwriter first and styles whole lines after,
// keeping escape codes out of the column width computation.
type table struct {
	header []string
	rows   [][]string
	styles []*lipgloss.Style
}

func (t *table) add(style *lipgloss.Style, cells ...string) {
	t.rows = append(t.rows, cells)
	t.styles = append(t.styles, style)
}

func (t *table) write(w io.Writer, st styles) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		switch {
		case i == 0:
			line = st.header.Render(line)
		case t.styles[i-1] != nil:
			line = t.styles[i-1].Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) transactionsText(w io.Writer, snap models.Snapshot) error {
	st := stylesFor(w)
	if len(snap.Transactions) == 0 {
		_, err := fmt.Fprintln(w, st.muted.Render(NoTransactionsMessage))
		return err
	}

	t := &table{header: []string{"ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT"}}
	for _, tx := range snap.Transactions {
		category := tx.Category
		if _, ok := snap.Category(tx.Category); !ok {
			category += UncategorizedSuffix
		}
		style := st.color(snap.CategoryColor(tx.Category))
		t.add(&style,
			fmt.Sprintf("%d", tx.ID),
			dateutils.FormatDate(tx.Date, g.location, ""),
			tx.Text,
			category,
			g.FormatAmount(tx.Amount))
	}
	return t.write(w, st)
}

func (g *Generator) categoriesText(w io.Writer, cats []models.Category) error {
	st := stylesFor(w)
	if len(cats) == 0 {
		_, err := fmt.Fprintln(w, st.muted.Render("No categories."))
		return err
	}

	t := &table{header: []string{"ID", "NAME", "TYPE", "COLOR"}}
	for _, c := range cats {
		style := st.color(c.Color)
		t.add(&style, fmt.Sprintf("%d", c.ID), c.Name, string(c.Type), "● "+c.Color)
	}
	return t.write(w, st)
}

func (g *Generator) analyticsText(w io.Writer, res analytics.Result) error {
	st := stylesFor(w)

	title := map[analytics.View]string{
		analytics.ViewTop:      "Top Spending",
		analytics.ViewCategory: "Spending by Category",
		analytics.ViewMonthly:  "Monthly Spending",
	}[res.View]
	if res.View == analytics.ViewMonthly && res.Window != "" && res.Window != analytics.WindowAll {
		title += fmt.Sprintf(" (last %d days)", res.Window.Days())
	}
	if _, err := fmt.Fprintln(w, st.title.Render(title)); err != nil {
		return err
	}

	if res.Empty() {
		_, err := fmt.Fprintf(w, "%s\n%s\n", NoExpensesMessage, st.muted.Render(NoExpensesHint))
		return err
	}

	largest := res.Max()
	t := &table{header: []string{"NAME", "AMOUNT", ""}}
	for _, c := range res.Categories {
		style := st.color(c.Color)
		t.add(&style, c.Name, g.FormatTotal(c.Total), Bar(c.Total, largest, BarWidth))
	}
	for _, m := range res.Months {
		style := st.color(colorExpense)
		t.add(&style, m.Name, g.FormatTotal(m.Total), Bar(m.Total, largest, BarWidth))
	}
	return t.write(w, st)
}

func (g *Generator) summaryText(w io.Writer, s Summary) error {
	st := stylesFor(w)
	_, err := fmt.Fprintf(w, "%s %s\n%s\n",
		st.title.Render("Total spent:"),
		st.color(colorExpense).Render(g.FormatTotal(s.TotalSpent)),
		st.muted.Render(fmt.Sprintf("%d expenses across %d transactions", s.Expenses, s.Transactions)))
	return err
}

func (g *Generator) shortcutsText(w io.Writer, amounts []decimal.Decimal) error {
	st := stylesFor(w)
	if len(amounts) == 0 {
		_, err := fmt.Fprintln(w, st.muted.Render(NoShortcutsMessage))
		return err
	}
	t := &table{header: []string{"#", "AMOUNT"}}
	for i, a := range amounts {
		t.add(nil, fmt.Sprintf("%d", i+1), g.currency+a.String())
	}
	return t.write(w, st)
}

// Bar renders value as a run of block characters scaled so that largest
// spans width. Any positive value gets at least one block.
func Bar(value, largest decimal.Decimal, width int) string {
	if !largest.IsPositive() || !value.IsPositive() || width <= 0 {
		return ""
	}
	n := int(value.Div(largest).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}
