package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/moneybags-dev/moneybags/internal/ledger"
	"github.com/moneybags-dev/moneybags/internal/model"
)

// fileLedger is the on-disk layout. Amounts are decimal strings so values
// survive a round trip exactly.
type fileLedger struct {
	Year        int           `yaml:"year"`
	Provisional bool          `yaml:"provisional,omitempty"`
	Rates       []fileRate    `yaml:"rates"`
	Costs       []fileCost    `yaml:"costs"`
	Invoices    []fileInvoice `yaml:"invoices"`
}

type fileRate struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type fileCost struct {
	Kind   string `yaml:"kind"`
	Amount string `yaml:"amount"`
	Label  string `yaml:"label"`
	Date   string `yaml:"date,omitempty"`
}

type fileInvoice struct {
	Date     string    `yaml:"date"`
	Amount   string    `yaml:"amount"`
	Hours    string    `yaml:"hours,omitempty"`
	Rate     *fileRate `yaml:"rate,omitempty"`
	Customer string    `yaml:"customer,omitempty"`
}

func marshalLedger(l *ledger.Ledger) fileLedger {
	r := l.Records()
	out := fileLedger{
		Year:        r.Year,
		Provisional: r.Provisional,
		Rates:       make([]fileRate, 0, len(r.Rates)),
		Costs:       make([]fileCost, 0, len(r.Costs)),
		Invoices:    make([]fileInvoice, 0, len(r.Invoices)),
	}
	for _, rate := range r.Rates {
		out.Rates = append(out.Rates, marshalRate(rate))
	}
	for _, c := range r.Costs {
		out.Costs = append(out.Costs, fileCost{
			Kind:   string(c.Kind),
			Amount: c.Amount.String(),
			Label:  c.Label,
			Date:   c.Date.String(),
		})
	}
	for _, inv := range r.Invoices {
		fi := fileInvoice{
			Date:     inv.Date.String(),
			Amount:   inv.Amount.String(),
			Customer: inv.Customer,
		}
		if inv.Rate != nil {
			rate := marshalRate(*inv.Rate)
			fi.Hours = inv.Hours.String()
			fi.Rate = &rate
		}
		out.Invoices = append(out.Invoices, fi)
	}
	return out
}

func marshalRate(r model.Rate) fileRate {
	return fileRate{Label: r.Label, Value: r.Value.String()}
}

func unmarshalLedger(f fileLedger) (*ledger.Ledger, error) {
	r := ledger.Records{Year: f.Year, Provisional: f.Provisional}

	for i, fr := range f.Rates {
		rate, err := unmarshalRate(fr)
		if err != nil {
			return nil, fmt.Errorf("rate %d: %w", i, err)
		}
		r.Rates = append(r.Rates, rate)
	}

	for i, fc := range f.Costs {
		c, err := unmarshalCost(fc)
		if err != nil {
			return nil, fmt.Errorf("cost %d: %w", i, err)
		}
		r.Costs = append(r.Costs, c)
	}

	for i, fi := range f.Invoices {
		inv, err := unmarshalInvoice(fi)
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", i, err)
		}
		r.Invoices = append(r.Invoices, inv)
	}

	return ledger.Restore(r)
}

func unmarshalRate(fr fileRate) (model.Rate, error) {
	v, err := parseAmount("value", fr.Value)
	if err != nil {
		return model.Rate{}, err
	}
	return model.Rate{Label: fr.Label, Value: v}, nil
}

func unmarshalCost(fc fileCost) (model.Cost, error) {
	kind, err := model.ParseCostKind(fc.Kind)
	if err != nil {
		return model.Cost{}, err
	}
	amount, err := parseAmount("amount", fc.Amount)
	if err != nil {
		return model.Cost{}, err
	}
	c := model.Cost{Kind: kind, Amount: amount, Label: fc.Label}
	if fc.Date != "" {
		if c.Date, err = model.ParseDate(fc.Date); err != nil {
			return model.Cost{}, err
		}
	}
	return c, nil
}

func unmarshalInvoice(fi fileInvoice) (model.Invoice, error) {
	date, err := model.ParseDate(fi.Date)
	if err != nil {
		return model.Invoice{}, err
	}
	amount, err := parseAmount("amount", fi.Amount)
	if err != nil {
		return model.Invoice{}, err
	}
	inv := model.Invoice{Date: date, Amount: amount, Customer: fi.Customer}
	if fi.Rate == nil {
		return inv, nil
	}
	rate, err := unmarshalRate(*fi.Rate)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("rate: %w", err)
	}
	if inv.Hours, err = parseAmount("hours", fi.Hours); err != nil {
		return model.Invoice{}, err
	}
	inv.Rate = &rate
	return inv, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
