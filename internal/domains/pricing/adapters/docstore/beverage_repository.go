package docstore

import (
	"context"
	"errors"

	"github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/pricing/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

var _ ports.BeverageRepository = (*BeverageRepository)(nil)

// BeverageRepository stores beverage items in the beverageInventory collection.
type BeverageRepository struct {
	store docstore.Store
}

func NewBeverageRepository(store docstore.Store) *BeverageRepository {
	return &BeverageRepository{store: store}
}

func (r *BeverageRepository) List(ctx context.Context) ([]domain.BeverageItem, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("beverage document repository not configured")
	}
	docs, err := r.store.QueryAll(ctx, docstore.CollectionBeverageInventory)
	if err != nil {
		return nil, err
	}
	items := make([]domain.BeverageItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, domain.BeverageItem{
			ID:               doc.ID,
			ItemName:         doc.Fields.String(fieldItemName),
			PreviousDayCount: doc.Fields.Int("previousDayCount"),
			TodayCount:       doc.Fields.Int("todayCount"),
			Date:             doc.Fields.String("date"),
		})
	}
	return items, nil
}

func (r *BeverageRepository) Insert(ctx context.Context, item domain.BeverageItem) (domain.BeverageItem, error) {
	if r == nil || r.store == nil {
		return domain.BeverageItem{}, errors.New("beverage document repository not configured")
	}
	id, err := r.store.Insert(ctx, docstore.CollectionBeverageInventory, docstore.Fields{
		fieldItemName:      item.ItemName,
		"previousDayCount": item.PreviousDayCount,
		"todayCount":       item.TodayCount,
		"date":             item.Date,
	})
	if err != nil {
		return domain.BeverageItem{}, err
	}
	item.ID = id
	return item, nil
}
