package ports

import (
	"context"

	"github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
)

// MoveResult is the outcome of a move request plus the catalog as it stands afterwards.
type MoveResult struct {
	Outcome domain.MoveOutcome
	Items   []domain.Item
}

// DeleteResult reports whether the cascade removed a price record alongside the item.
type DeleteResult struct {
	Item         domain.Item
	PriceRemoved bool
}

// Service exposes catalog use cases.
type Service interface {
	List(ctx context.Context) ([]domain.Item, error)
	Search(ctx context.Context, query string) ([]domain.Item, error)
	MoveUp(ctx context.Context, name string) (MoveResult, error)
	MoveDown(ctx context.Context, name string) (MoveResult, error)
	AddItem(ctx context.Context, name string) (domain.Item, error)
	RenameItem(ctx context.Context, id, newName string) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) (DeleteResult, error)
}
