package ports

import (
	"context"

	"github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
)

// SwapExecutor applies the writes of a swap plan strictly in sequence. A failure after the
// first write is reported as *domain.SwapStepError and earlier writes are not undone.
type SwapExecutor interface {
	Execute(ctx context.Context, plan domain.SwapPlan) error
}

// PriceCascade keeps the price list in step with catalog deletes and renames.
type PriceCascade interface {
	// DeletePrice removes the price for name. An absent price is not an error.
	DeletePrice(ctx context.Context, name string) (bool, error)
	// RenamePrice re-keys the price for oldName. An absent price is not an error.
	RenamePrice(ctx context.Context, oldName, newName string) error
}

// RefreshListener receives the catalog re-fetched after a completed move.
type RefreshListener func(ctx context.Context, items []domain.Item)
