package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moneybags-dev/moneybags/internal/ledger"
)

var (
	// ErrIO wraps filesystem failures while loading or saving.
	ErrIO = errors.New("i/o error")
	// ErrCorruptData is returned when a ledger file exists but cannot be read back.
	ErrCorruptData = errors.New("corrupt ledger file")
)

// Store loads and saves one ledger file.
type Store struct {
	path        string
	year        int
	provisional bool
}

// New creates a Store for path. year is used when the file does not exist yet.
func New(path string, year int) *Store {
	return &Store{path: path, year: year}
}

// NewProvisional is like New, but a ledger created for a missing file only
// assumes year until its first dated record.
func NewProvisional(path string, year int) *Store {
	return &Store{path: path, year: year, provisional: true}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the ledger file. A missing file yields an empty ledger.
func (s *Store) Load() (*ledger.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if s.provisional {
			return ledger.NewProvisional(s.year), nil
		}
		return ledger.New(s.year), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, s.path, err)
	}

	var f fileLedger
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrCorruptData, s.path, err)
	}
	l, err := unmarshalLedger(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptData, s.path, err)
	}
	return l, nil
}

// Save overwrites the ledger file with the full ledger.
func (s *Store) Save(l *ledger.Ledger) error {
	return write(s.path, l)
}

// SaveAs writes the ledger to another file. The store keeps its own path.
func (s *Store) SaveAs(path string, l *ledger.Ledger) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return write(expanded, l)
}

func write(path string, l *ledger.Ledger) error {
	data, err := yaml.Marshal(marshalLedger(l))
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %w", ErrIO, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	return nil
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
