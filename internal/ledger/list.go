package ledger

import (
	"fmt"
	"iter"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/moneybags-dev/moneybags/internal/model"
)

// Row is one numbered line of a listing.
type Row struct {
	Index  int
	Date   string
	Amount decimal.Decimal
	Label  string
	Detail string
}

func (r Row) String() string {
	parts := []string{fmt.Sprintf("%d:", r.Index)}
	for _, s := range []string{r.Date, r.Amount.StringFixed(2), r.Label} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if r.Detail != "" {
		parts = append(parts, "("+r.Detail+")")
	}
	return strings.Join(parts, " ")
}

// List returns the rows of a collection in listing order. The sequence reads
// the ledger each time it is ranged over, so it can be restarted.
func (l *Ledger) List(kind model.Kind) iter.Seq[Row] {
	switch kind {
	case model.KindRate:
		return l.rateRows
	case model.KindCost:
		return l.costRows
	case model.KindInvoice:
		return l.invoiceRows
	default:
		return func(func(Row) bool) {}
	}
}

// Len returns the number of rows List(kind) yields.
func (l *Ledger) Len(kind model.Kind) int {
	switch kind {
	case model.KindRate:
		return len(l.rates)
	case model.KindCost:
		n := 0
		for _, c := range l.costs {
			n += len(c.Occurrences(l.year))
		}
		return n
	case model.KindInvoice:
		return len(l.invoices)
	default:
		return 0
	}
}

func (l *Ledger) rateRows(yield func(Row) bool) {
	for i, r := range l.rates {
		if !yield(Row{Index: i, Amount: r.Value, Label: r.Label}) {
			return
		}
	}
}

func (l *Ledger) costRows(yield func(Row) bool) {
	n := 0
	for _, c := range l.costs {
		detail := ""
		if c.Kind == model.CostMonthly {
			detail = string(model.CostMonthly)
		}
		for _, d := range c.Occurrences(l.year) {
			if !yield(Row{Index: n, Date: d.String(), Amount: c.Amount, Label: c.Label, Detail: detail}) {
				return
			}
			n++
		}
	}
}

func (l *Ledger) invoiceRows(yield func(Row) bool) {
	for i, inv := range l.invoices {
		if !yield(Row{Index: i, Date: inv.Date.String(), Amount: inv.Amount, Label: inv.Customer, Detail: inv.Breakdown()}) {
			return
		}
	}
}
