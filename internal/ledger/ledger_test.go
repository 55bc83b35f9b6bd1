package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneybags-dev/moneybags/internal/model"
)

func TestResolveRate(t *testing.T) {
	l := New(2025)
	require.NoError(t, l.AddRate(dec("765"), "hourly"))
	require.NoError(t, l.AddRate(dec("900"), "on-call"))

	rate, err := l.ResolveRate("on-call")
	require.NoError(t, err)
	assert.True(t, rate.Value.Equal(dec("900")))

	_, err = l.ResolveRate("weekend")
	assert.ErrorIs(t, err, ErrRateNotFound)

	_, err = l.ResolveRate("Hourly")
	assert.ErrorIs(t, err, ErrRateNotFound, "labels match exactly")
}

func TestResolveRate_Ambiguous(t *testing.T) {
	l := New(2025)
	require.NoError(t, l.AddRate(dec("765"), "hourly"))
	require.NoError(t, l.AddRate(dec("900"), "hourly"))
	assert.Equal(t, 2, l.Len(model.KindRate), "duplicate labels are allowed")

	err := l.AddInvoice(InvoiceInput{Date: day(t, "2025-02-01"), Quantity: dec("10"), Rate: "hourly"})
	require.ErrorIs(t, err, ErrRateNotFound)
	assert.Contains(t, err.Error(), "2 rates")
	assert.Zero(t, l.Len(model.KindInvoice))
}

func TestAddInvoice_Hourly(t *testing.T) {
	l := exampleLedger(t)

	inv := l.Records().Invoices[0]
	assert.True(t, inv.Hourly())
	assert.Equal(t, "135000.00", inv.Amount.StringFixed(2))
	assert.True(t, inv.Hours.Equal(dec("150")))
	assert.Equal(t, "hourly", inv.Rate.Label)
}

func TestAddInvoice_Direct(t *testing.T) {
	l := New(2025)
	err := l.AddInvoice(InvoiceInput{Date: day(t, "2025-01-31"), Quantity: dec("1000"), Customer: "Acme"})
	require.NoError(t, err)

	inv := l.Records().Invoices[0]
	assert.False(t, inv.Hourly())
	assert.True(t, inv.Amount.Equal(dec("1000")))
	assert.Equal(t, "Acme", inv.Customer)
}

func TestAddInvoice_UnknownRate(t *testing.T) {
	l := New(2025)
	err := l.AddInvoice(InvoiceInput{Date: day(t, "2025-01-31"), Quantity: dec("50"), Rate: "hourly"})
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestEditRate_InvoicesKeepFrozenRate(t *testing.T) {
	l := exampleLedger(t)

	require.NoError(t, l.EditRate(0, dec("1000"), "hourly"))
	b := l.Balance()
	assert.Equal(t, "135000.00", b.Invoices.StringFixed(2), "existing invoice keeps the old price")

	inv := rows(l, model.KindInvoice)[0]
	assert.Equal(t, "150 * 900.00 hourly", inv.Detail)

	// New invoices use the edited value.
	require.NoError(t, l.AddInvoice(InvoiceInput{Date: day(t, "2025-02-28"), Quantity: dec("10"), Rate: "hourly"}))
	assert.Equal(t, "145000.00", l.Balance().Invoices.StringFixed(2))
}

func TestDeleteRate_InvoicesKeepFrozenRate(t *testing.T) {
	l := exampleLedger(t)

	require.NoError(t, l.Delete(model.KindRate, 0))
	assert.Equal(t, "135000.00", l.Balance().Invoices.StringFixed(2))
}

func TestEditInvoice_Reprices(t *testing.T) {
	l := exampleLedger(t)
	require.NoError(t, l.EditRate(0, dec("1000"), "hourly"))

	err := l.EditInvoice(0, InvoiceInput{Date: day(t, "2025-01-31"), Quantity: dec("150"), Rate: "hourly"})
	require.NoError(t, err)
	assert.Equal(t, "150000.00", l.Balance().Invoices.StringFixed(2))

	err = l.EditInvoice(1, InvoiceInput{Date: day(t, "2025-01-31"), Quantity: dec("1")})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestInvalidInput(t *testing.T) {
	l := New(2025)

	assert.ErrorIs(t, l.AddRate(dec("-1"), "hourly"), ErrInvalidAmount)
	assert.ErrorIs(t, l.AddCost(model.Cost{Kind: model.CostMonthly, Amount: dec("-5"), Label: "wages"}), ErrInvalidAmount)
	assert.ErrorIs(t, l.AddInvoice(InvoiceInput{Date: day(t, "2025-01-01"), Quantity: dec("-5")}), ErrInvalidAmount)

	assert.ErrorIs(t, l.AddInvoice(InvoiceInput{Date: day(t, "2024-12-31"), Quantity: dec("5")}), ErrInvalidDate)
	assert.ErrorIs(t, l.AddInvoice(InvoiceInput{Quantity: dec("5")}), ErrInvalidDate)
	assert.ErrorIs(t, l.AddCost(model.Cost{Kind: model.CostOneOff, Amount: dec("5"), Label: "desk"}), ErrInvalidDate)
	assert.Error(t, l.AddRate(dec("900"), ""))

	r := l.Records()
	assert.Empty(t, r.Rates)
	assert.Empty(t, r.Costs)
	assert.Empty(t, r.Invoices)
}

func TestAddCost_MonthlyDropsDate(t *testing.T) {
	l := New(2025)
	err := l.AddCost(model.Cost{Kind: model.CostMonthly, Amount: dec("5000"), Label: "wages", Date: day(t, "2025-06-01")})
	require.NoError(t, err)
	assert.True(t, l.Records().Costs[0].Date.IsZero())
}

func TestDelete_Reindexes(t *testing.T) {
	l := New(2025)
	for _, amount := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, l.AddInvoice(InvoiceInput{Date: day(t, "2025-03-01"), Quantity: dec(amount)}))
	}

	require.NoError(t, l.Delete(model.KindInvoice, 1))
	require.NoError(t, l.Delete(model.KindInvoice, 2))

	got := rows(l, model.KindInvoice)
	require.Len(t, got, 3)
	for i, want := range []string{"1", "3", "5"} {
		assert.Equal(t, i, got[i].Index)
		assert.True(t, got[i].Amount.Equal(dec(want)), "row %d: got %s want %s", i, got[i].Amount, want)
	}
}

func TestDelete_OutOfRange(t *testing.T) {
	l := exampleLedger(t)

	tests := []struct {
		kind  model.Kind
		index int
	}{
		{model.KindRate, 1},
		{model.KindRate, -1},
		{model.KindInvoice, 1},
		{model.KindCost, 12},
		{model.KindCost, -1},
	}
	for _, tt := range tests {
		err := l.Delete(tt.kind, tt.index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "delete %s %d", tt.kind, tt.index)
	}

	assert.Equal(t, 1, l.Len(model.KindRate))
	assert.Equal(t, 12, l.Len(model.KindCost))
	assert.Equal(t, 1, l.Len(model.KindInvoice))
}

func TestCostRows_AddressDefinition(t *testing.T) {
	l := New(2025)
	require.NoError(t, l.AddCost(model.Cost{Kind: model.CostOneOff, Amount: dec("10000"), Label: "insurance", Date: day(t, "2025-01")}))
	require.NoError(t, l.AddCost(model.Cost{Kind: model.CostMonthly, Amount: dec("5000"), Label: "wages"}))
	require.NoError(t, l.AddCost(model.Cost{Kind: model.CostOneOff, Amount: dec("300"), Label: "desk", Date: day(t, "2025-05-04")}))
	require.Equal(t, 14, l.Len(model.KindCost))

	// Row 5 is wages in May; editing it edits every month.
	require.NoError(t, l.EditCost(5, model.Cost{Kind: model.CostMonthly, Amount: dec("6000"), Label: "wages"}))
	assert.Equal(t, "82300.00", l.Balance().Costs.StringFixed(2))

	require.NoError(t, l.Delete(model.KindCost, 5))
	got := rows(l, model.KindCost)
	require.Len(t, got, 2)
	assert.Equal(t, "insurance", got[0].Label)
	assert.Equal(t, 1, got[1].Index)
	assert.Equal(t, "desk", got[1].Label)

	assert.ErrorIs(t, l.EditCost(2, model.Cost{Kind: model.CostMonthly, Amount: dec("1"), Label: "x"}), ErrIndexOutOfRange)
}

func TestRestore_CopiesRecords(t *testing.T) {
	l := exampleLedger(t)
	r := l.Records()

	restored, err := Restore(r)
	require.NoError(t, err)
	r.Rates[0].Label = "changed"

	assert.Equal(t, "hourly", restored.Records().Rates[0].Label)
	assert.Equal(t, 2025, restored.Year())
}

func TestRestore_Invalid(t *testing.T) {
	r := exampleLedger(t).Records()
	r.Invoices[0].Amount = dec("1")

	r.Rates[0].Label = ""

	_, err := Restore(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, model.KindRate, ve.Kind, "the first failure is reachable")
	assert.Contains(t, err.Error(), "invoice 0: amount 1.00 != 150 * 900.00")
}

func TestProvisionalYear_TakesFirstDatedRecord(t *testing.T) {
	l := NewProvisional(2026)
	require.NoError(t, l.AddRate(dec("900"), "hourly"))
	require.NoError(t, l.AddCost(model.Cost{Kind: model.CostMonthly, Amount: dec("50000"), Label: "wages"}))
	assert.True(t, l.Provisional(), "rates and monthly costs carry no date")
	assert.Equal(t, 2026, l.Year())

	require.NoError(t, l.AddInvoice(InvoiceInput{Date: day(t, "2025-01-31"), Quantity: dec("150"), Rate: "hourly"}))
	assert.False(t, l.Provisional())
	assert.Equal(t, 2025, l.Year())
	assert.Equal(t, "2025-01", rows(l, model.KindCost)[0].Date)

	b := l.Balance()
	assert.Equal(t, "135000.00", b.Invoices.StringFixed(2))
	assert.Equal(t, "3.44", b.BreakEven.StringFixed(2))

	err := l.AddInvoice(InvoiceInput{Date: day(t, "2026-01-31"), Quantity: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidDate, "the year is fixed once taken")
}

func TestProvisionalYear_FailedEntryKeepsDefault(t *testing.T) {
	l := NewProvisional(2026)

	err := l.AddInvoice(InvoiceInput{Date: day(t, "2025-01-31"), Quantity: dec("150"), Rate: "hourly"})
	require.ErrorIs(t, err, ErrRateNotFound)
	assert.True(t, l.Provisional())
	assert.Equal(t, 2026, l.Year())

	require.NoError(t, l.AddCost(model.Cost{Kind: model.CostOneOff, Amount: dec("300"), Label: "desk", Date: day(t, "2024-03-01")}))
	assert.Equal(t, 2024, l.Year())
}

func TestProvisionalYear_Restore(t *testing.T) {
	r := NewProvisional(2026).Records()
	assert.True(t, r.Provisional)

	l, err := Restore(r)
	require.NoError(t, err)
	assert.True(t, l.Provisional())

	r.Invoices = []model.Invoice{{Date: day(t, "2026-01-31"), Amount: dec("1")}}
	_, err = Restore(r)
	assert.Error(t, err, "dated records need a fixed year")
}
