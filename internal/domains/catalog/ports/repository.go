package ports

import (
	"context"

	"github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
)

// Repository persists catalog items. List returns items in fetched order, not sort order.
type Repository interface {
	List(ctx context.Context) ([]domain.Item, error)
	Insert(ctx context.Context, item domain.Item) (domain.Item, error)
	UpdateOrder(ctx context.Context, id string, order int64) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}
