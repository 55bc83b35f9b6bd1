package shell

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/moneybags-dev/moneybags/internal/ledger"
	"github.com/moneybags-dev/moneybags/internal/model"
)

// notApplicable is shown for the break-even count before any invoice exists.
const notApplicable = "N/A"

// amountColumn is the 1-based column holding money in every listing.
const amountColumn = 3

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func renderList(w io.Writer, l *ledger.Ledger, kind model.Kind) {
	if l.Len(kind) == 0 {
		fmt.Fprintf(w, "no %s\n", kind.Plural())
		return
	}

	t := newTable(w)
	switch kind {
	case model.KindRate:
		t.AppendHeader(table.Row{"#", "Label", "Rate"})
		for r := range l.List(kind) {
			t.AppendRow(table.Row{r.Index, r.Label, r.Amount.StringFixed(2)})
		}
	case model.KindCost:
		t.AppendHeader(table.Row{"#", "Date", "Amount", "Label", "Kind"})
		for r := range l.List(kind) {
			t.AppendRow(table.Row{r.Index, r.Date, r.Amount.StringFixed(2), r.Label, r.Detail})
		}
		t.AppendFooter(table.Row{"", "Total", l.Balance().Costs.StringFixed(2)})
	case model.KindInvoice:
		t.AppendHeader(table.Row{"#", "Date", "Amount", "Hours * Rate", "Customer"})
		for r := range l.List(kind) {
			t.AppendRow(table.Row{r.Index, r.Date, r.Amount.StringFixed(2), r.Detail, r.Label})
		}
		t.AppendFooter(table.Row{"", "YTD", l.Balance().Invoices.StringFixed(2)})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: amountColumn, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}

func renderBalance(w io.Writer, b ledger.Balance) {
	breakEven := notApplicable
	if b.HasBreakEven {
		breakEven = b.BreakEven.StringFixed(2)
	}

	t := newTable(w)
	t.AppendRows([]table.Row{
		{"Costs", b.Costs.StringFixed(2)},
		{"Invoices", b.Invoices.StringFixed(2)},
		{"Total", b.Total.StringFixed(2)},
		{"Average invoice", b.Average.StringFixed(2)},
		{"Invoices left to break even", breakEven},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}
