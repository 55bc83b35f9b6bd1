package shell

import (
	"github.com/shopspring/decimal"

	"github.com/moneybags-dev/moneybags/internal/model"
)

// Command is one parsed shell command. The implementations in this file are
// the complete set; Session.Execute switches over all of them.
type Command interface {
	isCommand()
}

// AddRate adds a named hourly rate.
type AddRate struct {
	Value decimal.Decimal
	Label string
}

// AddCost adds a cost. A zero Date on a one-off cost means today.
type AddCost struct {
	Kind   model.CostKind
	Amount decimal.Decimal
	Label  string
	Date   model.Date
}

// AddInvoice adds an invoice. With Rate set, Quantity is hours.
type AddInvoice struct {
	Date     model.Date
	Quantity decimal.Decimal
	Rate     string
	Customer string
}

// List prints one collection.
type List struct {
	Kind model.Kind
}

// EditRate replaces the rate at Index.
type EditRate struct {
	Index int
	AddRate
}

// EditCost replaces the cost listed at Index.
type EditCost struct {
	Index int
	AddCost
}

// EditInvoice replaces the invoice at Index.
type EditInvoice struct {
	Index int
	AddInvoice
}

// Delete removes the record of Kind listed at Index.
type Delete struct {
	Kind  model.Kind
	Index int
}

// Save writes the ledger, to Path when given and to the configured file otherwise.
type Save struct {
	Path string
}

// Balance prints the yearly summary.
type Balance struct{}

// Help prints usage for the command named by Topic, or for everything.
type Help struct {
	Topic []string
}

// Quit ends the interactive session.
type Quit struct{}

func (AddRate) isCommand()    {}
func (AddCost) isCommand()    {}
func (AddInvoice) isCommand() {}
func (List) isCommand()       {}
func (Delete) isCommand()     {}
func (Save) isCommand()       {}
func (Balance) isCommand()    {}
func (Help) isCommand()       {}
func (Quit) isCommand()       {}
