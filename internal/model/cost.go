package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CostKind distinguishes one-off expenses from recurring monthly ones.
type CostKind string

const (
	CostOneOff  CostKind = "one-off"
	CostMonthly CostKind = "monthly"
)

// MonthsPerYear is the number of occurrences a monthly cost expands to.
const MonthsPerYear = 12

// ParseCostKind accepts the canonical kind names and their short forms.
func ParseCostKind(s string) (CostKind, error) {
	switch s {
	case "one-off", "oneoff", "once", "o":
		return CostOneOff, nil
	case "monthly", "m":
		return CostMonthly, nil
	default:
		return "", fmt.Errorf("unknown cost kind %q (want one-off or monthly)", s)
	}
}

// Cost is an expense entry. Date is only meaningful for one-off costs.
type Cost struct {
	Kind   CostKind
	Amount decimal.Decimal
	Label  string
	Date   Date
}

// Occurrences returns the dates the cost is booked on within year: the cost's
// own date for a one-off, January through December for a monthly cost.
func (c Cost) Occurrences(year int) []Date {
	if c.Kind != CostMonthly {
		return []Date{c.Date}
	}
	dates := make([]Date, MonthsPerYear)
	for m := range MonthsPerYear {
		dates[m] = MonthOf(year, m+1)
	}
	return dates
}

// YearlyTotal returns what the cost contributes to a year's balance.
func (c Cost) YearlyTotal() decimal.Decimal {
	if c.Kind == CostMonthly {
		return c.Amount.Mul(decimal.NewFromInt(MonthsPerYear))
	}
	return c.Amount
}
