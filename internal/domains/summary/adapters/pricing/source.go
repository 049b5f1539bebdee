package pricing

import (
	"context"
	"errors"

	pricingports "github.com/Apurer/bakery-ledger/internal/domains/pricing/ports"
	summarydomain "github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	summaryports "github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
)

var _ summaryports.PriceSource = (*Source)(nil)

// Source reads beverage unit prices from the pricing context.
type Source struct {
	prices pricingports.Service
}

func NewSource(prices pricingports.Service) *Source {
	return &Source{prices: prices}
}

func (s *Source) PriceIndex(ctx context.Context) (summarydomain.PriceIndex, error) {
	if s == nil || s.prices == nil {
		return nil, errors.New("summary price source not configured")
	}
	idx, err := s.prices.PriceIndex(ctx)
	if err != nil {
		return nil, err
	}
	return idx, nil
}
