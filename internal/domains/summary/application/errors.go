package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	"github.com/Apurer/bakery-ledger/internal/shared/faults"
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidDate):
		return fmt.Errorf("%w: %w", faults.ErrValidation, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return faults.FromStore(err)
	}
}
