package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneybags-dev/moneybags/internal/model"
)

// ErrInvalidCommand is returned for input that does not parse as a command.
var ErrInvalidCommand = errors.New("invalid command")

// Parse splits a line with shell quoting rules and parses it.
func Parse(line string) (Command, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	return ParseArgs(args)
}

// ParseArgs parses an already split command line. Negative numbers are
// rejected here: a leading '-' makes them read as flags, and no index or
// amount may be negative anyway.
func ParseArgs(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrInvalidCommand)
	}

	var cmd Command
	root := newTree(&cmd)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		if n, ok := negativeNumber(args); ok {
			return nil, fmt.Errorf("%w: %s: indices and amounts cannot be negative", ErrInvalidCommand, n)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if cmd == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, strings.Join(args, " "))
	}
	return cmd, nil
}

// newTree builds the command grammar. Each RunE stores its parsed command in
// *out instead of acting on it. A fresh tree is needed per line because cobra
// keeps flag values between executions. With capture unset, help requests
// render normally instead of being stored.
func newTree(out *Command) *cobra.Command {
	capture := out != nil
	if !capture {
		out = new(Command)
	}

	root := &cobra.Command{
		Use:   "moneybags",
		Short: "Track a year of hourly rates, invoices and costs",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newAddCommand(out),
		newListCommand(out),
		newEditCommand(out),
		newDeleteCommand(out),
		&cobra.Command{
			Use:     "save [path]",
			Aliases: []string{"s"},
			Short:   "Write the ledger to its file, or to path",
			Args:    cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				s := Save{}
				if len(args) == 1 {
					s.Path = args[0]
				}
				*out = s
				return nil
			},
		},
		&cobra.Command{
			Use:     "balance",
			Aliases: []string{"b"},
			Short:   "Calculate difference between costs and invoices",
			Args:    cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				*out = Balance{}
				return nil
			},
		},
		&cobra.Command{
			Use:     "quit",
			Aliases: []string{"exit", "q"},
			Short:   "Leave the shell",
			Args:    cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				*out = Quit{}
				return nil
			},
		},
	)

	root.SetHelpCommand(&cobra.Command{
		Use:     "help [command...]",
		Aliases: []string{"h", "?"},
		Short:   "Show help for a command",
		RunE: func(_ *cobra.Command, args []string) error {
			h := Help{}
			if len(args) > 0 {
				h.Topic = args
			}
			*out = h
			return nil
		},
	})
	if capture {
		root.SetHelpFunc(func(c *cobra.Command, _ []string) {
			*out = Help{Topic: topicOf(c)}
		})
	}

	return root
}

func newAddCommand(out *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"a"},
		Short:   "Add a rate, cost or invoice",
		RunE:    missingKind,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "rate <amount> <label>",
			Aliases: []string{"r", "rates"},
			Short:   "Add an hourly rate, with a name",
			Args:    cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				r, err := parseRate(args)
				if err != nil {
					return err
				}
				*out = r
				return nil
			},
		},
		&cobra.Command{
			Use:     "cost one-off|monthly <amount> <label> [date]",
			Aliases: []string{"c", "costs"},
			Short:   "Add a one-off cost (dated, default today) or a monthly cost",
			Args:    cobra.RangeArgs(3, 4),
			RunE: func(_ *cobra.Command, args []string) error {
				c, err := parseCost(args)
				if err != nil {
					return err
				}
				*out = c
				return nil
			},
		},
		invoiceCommand("invoice <date> <amount|hours>", 2, func(_ []string, inv AddInvoice) error {
			*out = inv
			return nil
		}),
	)
	return cmd
}

func newEditCommand(out *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit",
		Aliases: []string{"e"},
		Short:   "Replace the fields of a listed rate, cost or invoice",
		RunE:    missingKind,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "rate <index> <amount> <label>",
			Aliases: []string{"r", "rates"},
			Short:   "Edit the rate at index",
			Args:    cobra.ExactArgs(3),
			RunE: func(_ *cobra.Command, args []string) error {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				r, err := parseRate(args[1:])
				if err != nil {
					return err
				}
				*out = EditRate{Index: index, AddRate: r}
				return nil
			},
		},
		&cobra.Command{
			Use:     "cost <index> one-off|monthly <amount> <label> [date]",
			Aliases: []string{"c", "costs"},
			Short:   "Edit the cost listed at index (a monthly row edits the whole monthly cost)",
			Args:    cobra.RangeArgs(4, 5),
			RunE: func(_ *cobra.Command, args []string) error {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				c, err := parseCost(args[1:])
				if err != nil {
					return err
				}
				*out = EditCost{Index: index, AddCost: c}
				return nil
			},
		},
		invoiceCommand("invoice <index> <date> <amount|hours>", 3, func(args []string, inv AddInvoice) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			*out = EditInvoice{Index: index, AddInvoice: inv}
			return nil
		}),
	)
	return cmd
}

// invoiceCommand builds the add/edit invoice subcommands. The last two
// positional args are always the date and the amount or hours; the rest are
// handed to done.
func invoiceCommand(use string, nargs int, done func(lead []string, inv AddInvoice) error) *cobra.Command {
	var rate, customer string

	cmd := &cobra.Command{
		Use:     use,
		Aliases: []string{"i", "invoices"},
		Short:   "Invoice a sum, or hours when a rate is given",
		Long: "Add an invoice, with a date and amount. If a rate is given, assumes amount\n" +
			"to be hours and calculates the total at the rate's current value.",
		Args: cobra.ExactArgs(nargs),
		RunE: func(_ *cobra.Command, args []string) error {
			lead, rest := args[:nargs-2], args[nargs-2:]
			date, err := model.ParseDate(rest[0])
			if err != nil {
				return err
			}
			qty, err := parseAmount(rest[1])
			if err != nil {
				return err
			}
			return done(lead, AddInvoice{Date: date, Quantity: qty, Rate: rate, Customer: customer})
		},
	}

	cmd.Flags().StringVarP(&rate, "rate", "r", "", "price the amount as hours at this rate")
	cmd.Flags().StringVarP(&customer, "customer", "c", "", "customer the invoice was sent to")
	return cmd
}

func newListCommand(out *Command) *cobra.Command {
	return &cobra.Command{
		Use:     "list rates|costs|invoices",
		Aliases: []string{"l", "ls"},
		Short:   "List rates, costs (monthly costs once per month) or invoices",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			*out = List{Kind: kind}
			return nil
		},
	}
}

func newDeleteCommand(out *Command) *cobra.Command {
	return &cobra.Command{
		Use:     "delete rate|cost|invoice <index>",
		Aliases: []string{"d", "rm"},
		Short:   "Delete the record listed at index; later indices shift down",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			*out = Delete{Kind: kind, Index: index}
			return nil
		},
	}
}

func missingKind(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("missing record kind (rate, cost or invoice)")
	}
	return fmt.Errorf("unknown record kind %q", args[0])
}

func parseRate(args []string) (AddRate, error) {
	value, err := parseAmount(args[0])
	if err != nil {
		return AddRate{}, err
	}
	return AddRate{Value: value, Label: args[1]}, nil
}

func parseCost(args []string) (AddCost, error) {
	kind, err := model.ParseCostKind(args[0])
	if err != nil {
		return AddCost{}, err
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return AddCost{}, err
	}
	c := AddCost{Kind: kind, Amount: amount, Label: args[2]}
	if len(args) == 4 {
		if kind == model.CostMonthly {
			return AddCost{}, errors.New("monthly costs take no date")
		}
		if c.Date, err = model.ParseDate(args[3]); err != nil {
			return AddCost{}, err
		}
	}
	return c, nil
}

func parseKind(s string) (model.Kind, error) {
	switch strings.ToLower(s) {
	case "r", "rate", "rates":
		return model.KindRate, nil
	case "c", "cost", "costs":
		return model.KindCost, nil
	case "i", "invoice", "invoices":
		return model.KindInvoice, nil
	default:
		return "", fmt.Errorf("unknown record kind %q (want rates, costs or invoices)", s)
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

func negativeNumber(args []string) (string, bool) {
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			if _, err := decimal.NewFromString(a); err == nil {
				return a, true
			}
		}
	}
	return "", false
}

// topicOf returns a command's path below the root, e.g. ["add", "rate"].
func topicOf(c *cobra.Command) []string {
	path := strings.Fields(c.CommandPath())
	if len(path) == 0 {
		return nil
	}
	return path[1:]
}
