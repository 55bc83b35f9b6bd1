package model

import "github.com/shopspring/decimal"

// Rate is a named hourly billing rate.
type Rate struct {
	Label string
	Value decimal.Decimal // currency per hour
}
