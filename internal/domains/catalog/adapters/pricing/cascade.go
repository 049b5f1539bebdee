package pricing

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
	pricingports "github.com/Apurer/bakery-ledger/internal/domains/pricing/ports"
)

var _ catalogports.PriceCascade = (*Cascade)(nil)

// Cascade forwards catalog deletes and renames to the pricing context.
type Cascade struct {
	prices pricingports.Service
}

func NewCascade(prices pricingports.Service) *Cascade {
	return &Cascade{prices: prices}
}

func (c *Cascade) DeletePrice(ctx context.Context, name string) (bool, error) {
	if c == nil || c.prices == nil {
		return false, errors.New("price cascade not configured")
	}
	return c.prices.DeletePrice(ctx, name)
}

func (c *Cascade) RenamePrice(ctx context.Context, oldName, newName string) error {
	if c == nil || c.prices == nil {
		return errors.New("price cascade not configured")
	}
	return c.prices.RenamePrice(ctx, oldName, newName)
}
