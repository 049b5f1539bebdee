// Package faults holds the error taxonomy shared by the bakery bounded contexts.
package faults

import (
	"errors"
	"fmt"

	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

var (
	// ErrRecordNotFound signals the addressed record does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrStoreUnavailable signals the data store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrPermissionDenied signals the data store refused the operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation signals rejected input.
	ErrValidation = errors.New("validation error")
)

// Validation wraps a user-facing message as a validation error.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFound wraps a description of the missing record.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRecordNotFound, fmt.Sprintf(format, args...))
}

// FromStore translates data store failures into the taxonomy. Errors already in the
// taxonomy pass through; unknown failures count as unavailable.
func FromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case Classified(err):
		return err
	case errors.Is(err, docstore.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	case errors.Is(err, docstore.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}

// Classified reports whether err already belongs to the taxonomy.
func Classified(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrValidation)
}

// Message returns the user-facing text for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return "Permission denied. Please check your access rights."
	case errors.Is(err, ErrStoreUnavailable):
		return "Service temporarily unavailable. Please try again."
	default:
		return err.Error()
	}
}
