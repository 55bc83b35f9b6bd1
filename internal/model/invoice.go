package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Invoice is a dated billed amount. Hourly invoices keep the hours and a
// snapshot of the rate they were priced at; Amount is always the billed sum.
type Invoice struct {
	Date     Date
	Amount   decimal.Decimal
	Hours    decimal.Decimal // zero unless Rate is set
	Rate     *Rate
	Customer string
}

// Hourly reports whether the invoice was entered as hours at a rate.
func (i Invoice) Hourly() bool {
	return i.Rate != nil
}

// Breakdown describes how an hourly invoice was priced, e.g. "150 * 900.00 hourly".
// It is empty for direct invoices.
func (i Invoice) Breakdown() string {
	if i.Rate == nil {
		return ""
	}
	return fmt.Sprintf("%s * %s %s", i.Hours.String(), i.Rate.Value.StringFixed(2), i.Rate.Label)
}
