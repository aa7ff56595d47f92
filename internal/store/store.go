// Package store provides the string record storage interface and its
// in-memory and SQLite implementations.
package store

import (
	"context"
	"time"

	"github.com/rcliao/string-analyzer/internal/analyzer"
	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/model"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Store defines the record storage interface. Values are unique: inserting
// a stored value fails instead of replacing it.
type Store interface {
	// Insert analyzes value and stores the resulting record.
	Insert(ctx context.Context, value string) (*model.StringRecord, error)

	// Get retrieves the record for value.
	Get(ctx context.Context, value string) (*model.StringRecord, error)

	// Delete removes the record for value.
	Delete(ctx context.Context, value string) error

	// All returns a snapshot of every record in no particular order.
	All(ctx context.Context) ([]model.StringRecord, error)

	// Len returns the number of stored records.
	Len(ctx context.Context) (int, error)

	// Close closes the store.
	Close() error
}

// Open creates an empty store for the named backend.
func Open(backend string) (Store, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore()
	default:
		return nil, errors.InvalidInputf("unknown store backend %q", backend)
	}
}

func newRecord(value string, now time.Time) model.StringRecord {
	props := analyzer.Analyze(value)
	return model.StringRecord{
		Value:      value,
		ID:         props.SHA256Hash,
		Properties: props,
		CreatedAt:  now.UTC().Truncate(time.Millisecond),
	}
}

func checkValue(value string) error {
	if value == "" {
		return errors.InvalidInputf("value must be a non-empty string")
	}
	return nil
}

func notFound(value string) error {
	return errors.Wrapf(errors.ErrNotFound, "string %q", value)
}

func alreadyExists(value string) error {
	return errors.Wrapf(errors.ErrAlreadyExists, "string %q", value)
}
