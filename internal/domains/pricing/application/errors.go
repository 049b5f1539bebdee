package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	"github.com/Apurer/bakery-ledger/internal/shared/faults"
)

// ErrDuplicateBeverage signals a beverage with the same name exists, ignoring case.
var ErrDuplicateBeverage = errors.New("beverage already exists")

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrNoPendingEdits),
		errors.Is(err, domain.ErrItemNameMissing),
		errors.Is(err, domain.ErrUnknownScope),
		errors.Is(err, domain.ErrDuplicateEdit),
		errors.Is(err, domain.ErrItemNameSlash),
		errors.Is(err, ErrDuplicateBeverage):
		return fmt.Errorf("%w: %w", faults.ErrValidation, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return faults.FromStore(err)
	}
}
