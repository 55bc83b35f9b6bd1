package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/moneybags-dev/moneybags/internal/ledger"
	"github.com/moneybags-dev/moneybags/internal/log"
	"github.com/moneybags-dev/moneybags/internal/model"
)

// Prompt is printed before every line read by Run.
const Prompt = "moneybags> "

// Gateway persists the session's ledger.
type Gateway interface {
	Path() string
	Save(l *ledger.Ledger) error
	SaveAs(path string, l *ledger.Ledger) error
}

// Options configure a Session.
type Options struct {
	Autosave bool
	Now      func() time.Time
	Logger   *slog.Logger
}

// Session executes commands against one ledger.
type Session struct {
	ledger   *ledger.Ledger
	store    Gateway
	out      io.Writer
	autosave bool
	dirty    bool
	now      func() time.Time
	logger   *slog.Logger
}

// NewSession creates a Session that owns l until it is closed.
func NewSession(l *ledger.Ledger, store Gateway, out io.Writer, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	return &Session{
		ledger:   l,
		store:    store,
		out:      out,
		autosave: opts.Autosave,
		now:      opts.Now,
		logger:   opts.Logger,
	}
}

// Dirty reports whether the ledger has changes that were not saved.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Execute runs one command to completion, including any autosave.
func (s *Session) Execute(cmd Command) error {
	var err error
	var done string

	switch c := cmd.(type) {
	case AddRate:
		err = s.ledger.AddRate(c.Value, c.Label)
		done = fmt.Sprintf("added rate %s: %s", c.Label, c.Value.StringFixed(2))
	case EditRate:
		err = s.ledger.EditRate(c.Index, c.Value, c.Label)
		done = fmt.Sprintf("updated rate %d", c.Index)
	case AddCost:
		err = s.ledger.AddCost(s.cost(c))
		done = fmt.Sprintf("added %s cost %s: %s", c.Kind, c.Label, c.Amount.StringFixed(2))
	case EditCost:
		err = s.ledger.EditCost(c.Index, s.cost(c.AddCost))
		done = fmt.Sprintf("updated cost %d", c.Index)
	case AddInvoice:
		err = s.ledger.AddInvoice(invoiceInput(c))
		done = "added invoice " + c.Date.String()
	case EditInvoice:
		err = s.ledger.EditInvoice(c.Index, invoiceInput(c.AddInvoice))
		done = fmt.Sprintf("updated invoice %d", c.Index)
	case Delete:
		err = s.ledger.Delete(c.Kind, c.Index)
		done = fmt.Sprintf("deleted %s %d", c.Kind, c.Index)
	case List:
		renderList(s.out, s.ledger, c.Kind)
		return nil
	case Balance:
		renderBalance(s.out, s.ledger.Balance())
		return nil
	case Save:
		return s.save(c.Path)
	case Help:
		return s.help(c.Topic)
	case Quit:
		return nil
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}

	if err != nil {
		return err
	}
	s.dirty = true
	fmt.Fprintln(s.out, done)

	if s.autosave {
		if err := s.store.Save(s.ledger); err != nil {
			return fmt.Errorf("autosave: %w", err)
		}
		s.dirty = false
		s.logger.Debug("autosaved ledger", "path", s.store.Path())
	}
	return nil
}

// Run reads commands from in until EOF or quit. Bad commands are reported
// and the loop continues. Lines have no length limit.
func (s *Session) Run(in io.Reader) error {
	r := bufio.NewReader(in)
	for {
		fmt.Fprint(s.out, Prompt)
		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			fmt.Fprintln(s.out)
			s.Close()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if quit := s.handle(line); quit {
			s.Close()
			return nil
		}
	}
}

// handle parses and executes one input line. It reports whether the line was quit.
func (s *Session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, err := Parse(line)
	if err != nil {
		s.report(err)
		return false
	}
	if _, ok := cmd.(Quit); ok {
		return true
	}
	if err := s.Execute(cmd); err != nil {
		s.report(err)
	}
	return false
}

// Close warns about changes that will be lost.
func (s *Session) Close() {
	if s.dirty {
		fmt.Fprintf(s.out, "warning: unsaved changes were not written to %s\n", s.store.Path())
	}
}

func (s *Session) save(path string) error {
	if path != "" {
		if err := s.store.SaveAs(path, s.ledger); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "saved to %s\n", path)
		return nil
	}

	if err := s.store.Save(s.ledger); err != nil {
		return err
	}
	s.dirty = false
	fmt.Fprintf(s.out, "saved to %s\n", s.store.Path())
	return nil
}

func (s *Session) help(topic []string) error {
	root := newTree(nil)
	root.SetOut(s.out)
	root.InitDefaultHelpCmd()
	target, rest, err := root.Find(topic)
	if err != nil || len(rest) > 0 {
		return fmt.Errorf("%w: no help for %q", ErrInvalidCommand, strings.Join(topic, " "))
	}
	return target.Help()
}

func (s *Session) report(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
	if errors.Is(err, ErrInvalidCommand) {
		fmt.Fprintln(s.out, `type "help" for usage`)
	}
}

// cost fills in the default date of a one-off cost: today when it falls in
// the ledger year, otherwise the first of January.
func (s *Session) cost(c AddCost) model.Cost {
	date := c.Date
	if c.Kind == model.CostOneOff && date.IsZero() {
		date = model.DayOf(s.now())
		if date.Year() != s.ledger.Year() {
			date = model.DayOf(time.Date(s.ledger.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
		}
	}
	return model.Cost{Kind: c.Kind, Amount: c.Amount, Label: c.Label, Date: date}
}

func invoiceInput(c AddInvoice) ledger.InvoiceInput {
	return ledger.InvoiceInput{Date: c.Date, Quantity: c.Quantity, Rate: c.Rate, Customer: c.Customer}
}
