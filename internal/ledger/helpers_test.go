package ledger

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/moneybags-dev/moneybags/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func rows(l *Ledger, kind model.Kind) []Row {
	return slices.Collect(l.List(kind))
}

// exampleLedger is the worked example: one rate, one monthly cost, one hourly invoice.
func exampleLedger(t *testing.T) *Ledger {
	t.Helper()
	l := New(2025)
	require.NoError(t, l.AddRate(dec("900"), "hourly"))
	require.NoError(t, l.AddCost(model.Cost{Kind: model.CostMonthly, Amount: dec("50000"), Label: "wages"}))
	require.NoError(t, l.AddInvoice(InvoiceInput{Date: day(t, "2025-01-31"), Quantity: dec("150"), Rate: "hourly"}))
	return l
}
