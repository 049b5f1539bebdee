package ports

import (
	"context"

	"github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
)

// Service exposes pricing use cases.
type Service interface {
	GetPrice(ctx context.Context, name string) (domain.Lookup, error)
	PriceIndex(ctx context.Context) (domain.Index, error)
	SetPendingEdit(ctx context.Context, scope domain.Scope, name, raw string) error
	PendingEdits(ctx context.Context, scope domain.Scope) []domain.Edit
	CommitEdits(ctx context.Context, edits []domain.Edit) (domain.CommitResult, error)
	CommitPending(ctx context.Context, scope domain.Scope) (domain.CommitResult, error)
	DeletePrice(ctx context.Context, name string) (bool, error)
	RenamePrice(ctx context.Context, oldName, newName string) error
	AddBeverage(ctx context.Context, name string) (domain.BeverageItem, error)
	ListBeverages(ctx context.Context) ([]domain.BeverageItem, error)
	Stats(ctx context.Context, bakeryNames []string) (domain.PriceStats, error)
}
