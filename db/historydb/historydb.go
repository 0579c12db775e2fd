// Package historydb persists the record of past searches. File contents are
// never stored here; the search engine itself stays stateless.
package historydb

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidEntry = errors.New("invalid entry")
)

type InvalidEntryError struct {
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid entry: %s", e.Reason)
}

func (e *InvalidEntryError) Is(target error) bool {
	return target == ErrInvalidEntry
}

// Entry is one completed search.
type Entry struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Query       string    `json:"query"`
	Type        string    `json:"type"`
	Mode        string    `json:"mode"`
	Block       string    `json:"block"`
	ResultCount int       `json:"result_count"`
	DurationMS  int64     `json:"duration_ms"`
	SearchedAt  time.Time `json:"searched_at"`
}

type Store interface {
	Append(entry Entry) error
	Recent(limit int) ([]Entry, error)
	Clear() error
	Close() error
}
