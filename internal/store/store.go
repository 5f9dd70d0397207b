package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store appends work log entries to one CSV file per calendar day and reads
// them back. Rows are append-only; nothing is ever rewritten. A single
// running instance is assumed — there is no file locking.
type Store struct {
	dir      string
	interval time.Duration // reminder interval, used to estimate the first start time of a day
}

// New creates (if needed) the worklog directory and returns a Store bound to
// it. The reminder interval is fixed at construction; rebuild the store when
// settings change.
func New(dir string, interval time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create worklog directory: %w", err)
	}
	return &Store{dir: dir, interval: interval}, nil
}

// Dir returns the worklog directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// dayPath returns the CSV file path for the given date, named by ISO date.
func (s *Store) dayPath(day time.Time) string {
	return filepath.Join(s.dir, day.Format(DateLayout)+".csv")
}

// DefaultDir returns ~/worklog.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "worklog"), nil
}
