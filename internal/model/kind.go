package model

// Kind names one of the three record collections of a ledger.
type Kind string

const (
	KindRate    Kind = "rate"
	KindCost    Kind = "cost"
	KindInvoice Kind = "invoice"
)

// Plural returns the collection name used in listings ("rates", "costs", ...).
func (k Kind) Plural() string {
	return string(k) + "s"
}
