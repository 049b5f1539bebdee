package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	"github.com/Apurer/bakery-ledger/internal/shared/faults"
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNameHasSlash),
		errors.Is(err, domain.ErrDuplicateName):
		return fmt.Errorf("%w: %w", faults.ErrValidation, err)
	case errors.Is(err, domain.ErrItemNotFound):
		return fmt.Errorf("%w: %w", faults.ErrRecordNotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return faults.FromStore(err)
	}
}
