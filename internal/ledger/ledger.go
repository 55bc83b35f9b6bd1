package ledger

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/moneybags-dev/moneybags/internal/model"
)

var (
	// ErrIndexOutOfRange is returned when an edit or delete names a position
	// that is not in the current listing.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrRateNotFound is returned when a rate label matches no rate, or more than one.
	ErrRateNotFound = errors.New("rate not found or ambiguous")
	// ErrInvalidAmount is returned for negative amounts or hours.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidDate is returned for missing dates or dates outside the ledger year.
	ErrInvalidDate = errors.New("invalid date")
)

// Ledger holds the rates, costs and invoices of one year.
type Ledger struct {
	year        int
	provisional bool
	rates       []model.Rate
	costs       []model.Cost
	invoices    []model.Invoice
}

// Records is a plain copy of a ledger's contents, used for persistence.
type Records struct {
	Year     int
	Rates    []model.Rate
	Costs    []model.Cost
	Invoices []model.Invoice

	// Provisional is set while Year is only a default. No record is dated yet.
	Provisional bool
}

// New returns an empty ledger for year.
func New(year int) *Ledger {
	return &Ledger{year: year}
}

// NewProvisional returns an empty ledger that assumes year until the first
// dated cost or invoice is entered, then takes that record's year.
func NewProvisional(year int) *Ledger {
	return &Ledger{year: year, provisional: true}
}

// Restore builds a ledger from persisted records after validating them.
func Restore(r Records) (*Ledger, error) {
	if verrs := Validate(r); len(verrs) > 0 {
		return nil, joinValidation(verrs)
	}
	return &Ledger{
		year:        r.Year,
		provisional: r.Provisional,
		rates:       slices.Clone(r.Rates),
		costs:       slices.Clone(r.Costs),
		invoices:    slices.Clone(r.Invoices),
	}, nil
}

// Records returns a copy of the ledger's contents.
func (l *Ledger) Records() Records {
	return Records{
		Year:        l.year,
		Provisional: l.provisional,
		Rates:       slices.Clone(l.rates),
		Costs:       slices.Clone(l.costs),
		Invoices:    slices.Clone(l.invoices),
	}
}

// Year returns the tracked year.
func (l *Ledger) Year() int {
	return l.year
}

// Provisional reports whether the year may still change with the first dated record.
func (l *Ledger) Provisional() bool {
	return l.provisional
}

// AddRate appends a rate. Labels need not be unique.
func (l *Ledger) AddRate(value decimal.Decimal, label string) error {
	rate, err := l.newRate(value, label)
	if err != nil {
		return err
	}
	l.rates = append(l.rates, rate)
	return nil
}

// EditRate replaces the rate at index. Invoices already priced at the old
// value keep it.
func (l *Ledger) EditRate(index int, value decimal.Decimal, label string) error {
	if err := checkIndex(model.KindRate, index, len(l.rates)); err != nil {
		return err
	}
	rate, err := l.newRate(value, label)
	if err != nil {
		return err
	}
	l.rates[index] = rate
	return nil
}

// ResolveRate returns the only rate whose label is exactly label.
func (l *Ledger) ResolveRate(label string) (model.Rate, error) {
	var found []model.Rate
	for _, r := range l.rates {
		if r.Label == label {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return model.Rate{}, fmt.Errorf("%w: no rate labelled %q", ErrRateNotFound, label)
	default:
		return model.Rate{}, fmt.Errorf("%w: %d rates labelled %q", ErrRateNotFound, len(found), label)
	}
}

// AddCost appends a cost.
func (l *Ledger) AddCost(c model.Cost) error {
	c, err := l.checkCost(c)
	if err != nil {
		return err
	}
	l.costs = append(l.costs, c)
	l.fixYear(c.Date)
	return nil
}

// EditCost replaces the cost shown at listing row. A row belonging to a
// monthly cost addresses the whole recurring definition.
func (l *Ledger) EditCost(row int, c model.Cost) error {
	i, err := l.costAtRow(row)
	if err != nil {
		return err
	}
	c, err = l.checkCost(c)
	if err != nil {
		return err
	}
	l.costs[i] = c
	l.fixYear(c.Date)
	return nil
}

// InvoiceInput is an invoice as entered. With Rate set, Quantity is hours
// and the rate is resolved by label; otherwise Quantity is the billed sum.
type InvoiceInput struct {
	Date     model.Date
	Quantity decimal.Decimal
	Rate     string
	Customer string
}

// AddInvoice appends an invoice, pricing hourly input at the rate's current value.
func (l *Ledger) AddInvoice(in InvoiceInput) error {
	inv, err := l.priceInvoice(in)
	if err != nil {
		return err
	}
	l.invoices = append(l.invoices, inv)
	l.fixYear(inv.Date)
	return nil
}

// EditInvoice replaces the invoice at index, re-pricing it as if newly entered.
func (l *Ledger) EditInvoice(index int, in InvoiceInput) error {
	if err := checkIndex(model.KindInvoice, index, len(l.invoices)); err != nil {
		return err
	}
	inv, err := l.priceInvoice(in)
	if err != nil {
		return err
	}
	l.invoices[index] = inv
	return nil
}

// Delete removes the record listed at index. Later records shift down.
func (l *Ledger) Delete(kind model.Kind, index int) error {
	switch kind {
	case model.KindRate:
		if err := checkIndex(kind, index, len(l.rates)); err != nil {
			return err
		}
		l.rates = slices.Delete(l.rates, index, index+1)
	case model.KindCost:
		i, err := l.costAtRow(index)
		if err != nil {
			return err
		}
		l.costs = slices.Delete(l.costs, i, i+1)
	case model.KindInvoice:
		if err := checkIndex(kind, index, len(l.invoices)); err != nil {
			return err
		}
		l.invoices = slices.Delete(l.invoices, index, index+1)
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	return nil
}

func (l *Ledger) newRate(value decimal.Decimal, label string) (model.Rate, error) {
	if value.IsNegative() {
		return model.Rate{}, fmt.Errorf("%w: rate %s is negative", ErrInvalidAmount, value)
	}
	if label == "" {
		return model.Rate{}, errors.New("rate label must not be empty")
	}
	return model.Rate{Label: label, Value: value}, nil
}

func (l *Ledger) checkCost(c model.Cost) (model.Cost, error) {
	if c.Amount.IsNegative() {
		return c, fmt.Errorf("%w: cost %s is negative", ErrInvalidAmount, c.Amount)
	}
	switch c.Kind {
	case model.CostMonthly:
		c.Date = model.Date{}
	case model.CostOneOff:
		if err := l.checkDate(c.Date); err != nil {
			return c, err
		}
	default:
		return c, fmt.Errorf("unknown cost kind %q", c.Kind)
	}
	return c, nil
}

func (l *Ledger) priceInvoice(in InvoiceInput) (model.Invoice, error) {
	if err := l.checkDate(in.Date); err != nil {
		return model.Invoice{}, err
	}
	if in.Quantity.IsNegative() {
		return model.Invoice{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, in.Quantity)
	}
	inv := model.Invoice{Date: in.Date, Amount: in.Quantity, Customer: in.Customer}
	if in.Rate == "" {
		return inv, nil
	}
	rate, err := l.ResolveRate(in.Rate)
	if err != nil {
		return model.Invoice{}, err
	}
	inv.Hours = in.Quantity
	inv.Rate = &rate
	inv.Amount = in.Quantity.Mul(rate.Value)
	return inv, nil
}

func (l *Ledger) checkDate(d model.Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if !l.provisional && d.Year() != l.year {
		return fmt.Errorf("%w: %s is outside %d", ErrInvalidDate, d, l.year)
	}
	return nil
}

// fixYear settles a provisional year on the year of the first dated record.
func (l *Ledger) fixYear(d model.Date) {
	if l.provisional && !d.IsZero() {
		l.year = d.Year()
		l.provisional = false
	}
}

// costAtRow maps a costs listing row to the index of the cost that produced it.
func (l *Ledger) costAtRow(row int) (int, error) {
	if row >= 0 {
		n := 0
		for i, c := range l.costs {
			n += len(c.Occurrences(l.year))
			if row < n {
				return i, nil
			}
		}
	}
	return 0, checkIndex(model.KindCost, row, l.Len(model.KindCost))
}

func checkIndex(kind model.Kind, index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: no %s at %d (%d listed)", ErrIndexOutOfRange, kind, index, n)
	}
	return nil
}
