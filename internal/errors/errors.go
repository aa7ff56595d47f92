// Package errors provides error handling for string-analyzer.
//
// It re-exports the parts of github.com/cockroachdb/errors the service uses
// and defines one sentinel per error kind the core can surface. Wrap a
// sentinel to add context; KindOf recovers the kind through any amount of
// wrapping:
//
//	return errors.Wrapf(errors.ErrNotFound, "string %q", value)
//
//	switch errors.KindOf(err) {
//	case errors.KindNotFound:
//	    // 404
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New      = crdb.New
	Newf     = crdb.Newf
	Wrap     = crdb.Wrap
	Wrapf    = crdb.Wrapf
	WithHint = crdb.WithHint
)

// Error inspection
var (
	Is           = crdb.Is
	As           = crdb.As
	UnwrapAll    = crdb.UnwrapAll
	FlattenHints = crdb.FlattenHints
)

// Kind classifies an error for the interface layer.
type Kind int

const (
	// KindUnknown is any error not derived from a sentinel below.
	KindUnknown Kind = iota
	// KindInvalidInput: a value or filter failed validation.
	KindInvalidInput
	// KindAlreadyExists: the string is already stored.
	KindAlreadyExists
	// KindNotFound: the string is not stored.
	KindNotFound
	// KindConflictingFilters: min_length ended up above max_length.
	KindConflictingFilters
	// KindUntranslatable: no natural-language rule matched.
	KindUntranslatable
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	case KindConflictingFilters:
		return "conflicting_filters"
	case KindUntranslatable:
		return "untranslatable"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind. Compare with Is, never by message.
var (
	ErrInvalidInput       = New("invalid input")
	ErrAlreadyExists      = New("string already exists")
	ErrNotFound           = New("string not found")
	ErrConflictingFilters = New("conflicting filters")
	ErrUntranslatable     = New("unable to parse natural language query")
)

var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrInvalidInput, KindInvalidInput},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrNotFound, KindNotFound},
	{ErrConflictingFilters, KindConflictingFilters},
	{ErrUntranslatable, KindUntranslatable},
}

// KindOf reports the kind of err. A nil error has KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindUnknown
}

// ParseKind is the inverse of Kind.String. Unrecognized names give
// KindUnknown.
func ParseKind(name string) Kind {
	for _, k := range kinds {
		if k.kind.String() == name {
			return k.kind
		}
	}
	return KindUnknown
}

// Sentinel returns the sentinel error for k, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	for _, entry := range kinds {
		if entry.kind == k {
			return entry.sentinel
		}
	}
	return nil
}

// InvalidInputf wraps ErrInvalidInput with a formatted reason.
func InvalidInputf(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidInput, format, args...)
}
