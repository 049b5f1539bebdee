package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
)

// PriceRepository persists price records. List returns records in fetched order.
type PriceRepository interface {
	List(ctx context.Context) ([]domain.PriceRecord, error)
	Insert(ctx context.Context, record domain.PriceRecord) (domain.PriceRecord, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// BeverageRepository persists beverage items.
type BeverageRepository interface {
	List(ctx context.Context) ([]domain.BeverageItem, error)
	Insert(ctx context.Context, item domain.BeverageItem) (domain.BeverageItem, error)
}
