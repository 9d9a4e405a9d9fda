// Package errors provides error handling for CineGraph.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints for load failures
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := loadDataset(); err != nil {
//	    return errors.Wrap(err, "failed to load dataset")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNoData) {
//	    // show "no data available" message
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across CineGraph.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNoData indicates that neither the primary nor the fallback dataset
	// source produced a usable dataset. The caller must present a visible
	// message and allow manual file selection.
	ErrNoData = New("no data available")

	// ErrInvalidDataset indicates a user-provided file could not be parsed
	// as a dataset. Distinct from ErrNoData so the UI can word the message
	// differently.
	ErrInvalidDataset = New("invalid dataset file")

	// ErrNoDataset indicates an operation that requires a loaded dataset was
	// invoked before any dataset load succeeded.
	ErrNoDataset = New("no dataset loaded")

	// ErrUnknownMode indicates an unrecognized layout mode name.
	ErrUnknownMode = New("unknown layout mode")
)

// IsNoDataError checks if an error is or wraps ErrNoData.
func IsNoDataError(err error) bool {
	return err != nil && Is(err, ErrNoData)
}

// IsInvalidDatasetError checks if an error is or wraps ErrInvalidDataset.
func IsInvalidDatasetError(err error) bool {
	return err != nil && Is(err, ErrInvalidDataset)
}

// WrapInvalidDataset wraps an error as an invalid-dataset error with context.
func WrapInvalidDataset(err error, context string) error {
	return Wrap(Wrap(ErrInvalidDataset, err.Error()), context)
}

// NewUnknownModeError creates an unknown-mode error naming the offending mode.
func NewUnknownModeError(mode string) error {
	return Wrap(ErrUnknownMode, mode)
}
