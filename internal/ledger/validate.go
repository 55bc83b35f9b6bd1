package ledger

import (
	"errors"
	"fmt"

	"github.com/moneybags-dev/moneybags/internal/model"
)

// ValidationError describes one inconsistent record in persisted data.
type ValidationError struct {
	Kind        model.Kind
	Index       int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Kind, e.Index, e.Description)
}

// Validate checks records loaded from storage against the rules enforced on entry.
func Validate(r Records) []ValidationError {
	var errs []ValidationError
	add := func(kind model.Kind, i int, format string, args ...any) {
		errs = append(errs, ValidationError{Kind: kind, Index: i, Description: fmt.Sprintf(format, args...)})
	}
	inYear := func(d model.Date) bool {
		return !d.IsZero() && d.Year() == r.Year
	}

	if r.Year <= 0 {
		add("ledger", 0, "year %d is not valid", r.Year)
	}
	if r.Provisional && len(r.Invoices) > 0 {
		add("ledger", 0, "provisional year with %d dated invoices", len(r.Invoices))
	}

	for i, rate := range r.Rates {
		if rate.Label == "" {
			add(model.KindRate, i, "missing label")
		}
		if rate.Value.IsNegative() {
			add(model.KindRate, i, "negative value %s", rate.Value)
		}
	}

	for i, c := range r.Costs {
		if c.Amount.IsNegative() {
			add(model.KindCost, i, "negative amount %s", c.Amount)
		}
		switch c.Kind {
		case model.CostOneOff:
			if r.Provisional {
				add(model.KindCost, i, "dated cost in a ledger with a provisional year")
			} else if !inYear(c.Date) {
				add(model.KindCost, i, "date %q not in %d", c.Date, r.Year)
			}
		case model.CostMonthly:
		default:
			add(model.KindCost, i, "unknown kind %q", c.Kind)
		}
	}

	for i, inv := range r.Invoices {
		if !inYear(inv.Date) {
			add(model.KindInvoice, i, "date %q not in %d", inv.Date, r.Year)
		}
		if inv.Amount.IsNegative() {
			add(model.KindInvoice, i, "negative amount %s", inv.Amount)
		}
		if inv.Rate == nil {
			continue
		}
		// Hourly invoices must still agree with the rate they were priced at.
		if want := inv.Hours.Mul(inv.Rate.Value); !inv.Amount.Equal(want) {
			add(model.KindInvoice, i, "amount %s != %s * %s", inv.Amount.StringFixed(2), inv.Hours, inv.Rate.Value.StringFixed(2))
		}
	}

	return errs
}

// joinValidation keeps each ValidationError reachable with errors.As.
func joinValidation(verrs []ValidationError) error {
	errs := make([]error, len(verrs))
	for i, ve := range verrs {
		errs[i] = ve
	}
	return fmt.Errorf("validation failed: %w", errors.Join(errs...))
}
