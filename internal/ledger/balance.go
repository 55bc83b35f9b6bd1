package ledger

import (
	"github.com/shopspring/decimal"
)

// Balance summarises a year's costs against its invoices.
type Balance struct {
	Costs    decimal.Decimal
	Invoices decimal.Decimal
	Total    decimal.Decimal // Invoices - Costs
	Average  decimal.Decimal // zero when there are no invoices
	// BreakEven is how many average invoices cover the deficit. It is only
	// meaningful when HasBreakEven is set, which needs a positive Average.
	BreakEven    decimal.Decimal
	HasBreakEven bool
}

// Balance computes the summary from the current records.
func (l *Ledger) Balance() Balance {
	var b Balance
	for _, c := range l.costs {
		b.Costs = b.Costs.Add(c.YearlyTotal())
	}
	for _, inv := range l.invoices {
		b.Invoices = b.Invoices.Add(inv.Amount)
	}
	b.Total = b.Invoices.Sub(b.Costs)

	if len(l.invoices) == 0 {
		return b
	}
	b.Average = b.Invoices.Div(decimal.NewFromInt(int64(len(l.invoices))))
	if !b.Average.IsPositive() {
		return b
	}
	deficit := decimal.Max(decimal.Zero, b.Total.Neg())
	b.BreakEven = deficit.Div(b.Average)
	b.HasBreakEven = true
	return b
}
