package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/pricing/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
	"github.com/Apurer/bakery-ledger/internal/shared/projection"
)

var _ ports.PriceRepository = (*PriceRepository)(nil)

const (
	fieldItemName  = "itemName"
	fieldPrice     = "price"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// PriceRepository stores price records in the priceRecords collection.
type PriceRepository struct {
	store docstore.Store
	now   func() time.Time
}

type Option func(*PriceRepository)

func WithClock(now func() time.Time) Option {
	return func(r *PriceRepository) {
		if now != nil {
			r.now = now
		}
	}
}

func NewPriceRepository(store docstore.Store, opts ...Option) *PriceRepository {
	r := &PriceRepository{store: store, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *PriceRepository) List(ctx context.Context) ([]domain.PriceRecord, error) {
	if err := r.ensureStore(); err != nil {
		return nil, err
	}
	docs, err := r.store.QueryAll(ctx, docstore.CollectionPriceRecords)
	if err != nil {
		return nil, err
	}
	records := make([]domain.PriceRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, toPriceRecord(doc))
	}
	return records, nil
}

// Insert stamps createdAt and updatedAt.
func (r *PriceRepository) Insert(ctx context.Context, record domain.PriceRecord) (domain.PriceRecord, error) {
	if err := r.ensureStore(); err != nil {
		return domain.PriceRecord{}, err
	}
	now := r.now()
	record.CreatedAt, record.UpdatedAt = now, now
	id, err := r.store.Insert(ctx, docstore.CollectionPriceRecords, docstore.Fields{
		fieldItemName:  record.ItemName,
		fieldPrice:     record.Price,
		fieldCreatedAt: record.CreatedAt,
		fieldUpdatedAt: record.UpdatedAt,
	})
	if err != nil {
		return domain.PriceRecord{}, err
	}
	record.ID = id
	return record, nil
}

// UpdatePrice stamps updatedAt.
func (r *PriceRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	return r.store.Update(ctx, docstore.CollectionPriceRecords, id, docstore.Fields{
		fieldPrice:     price,
		fieldUpdatedAt: r.now(),
	})
}

func (r *PriceRepository) Rename(ctx context.Context, id, name string) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	return r.store.Update(ctx, docstore.CollectionPriceRecords, id, docstore.Fields{
		fieldItemName:  name,
		fieldUpdatedAt: r.now(),
	})
}

func (r *PriceRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	return r.store.Delete(ctx, docstore.CollectionPriceRecords, id)
}

func (r *PriceRepository) ensureStore() error {
	if r == nil || r.store == nil {
		return errors.New("price document repository not configured")
	}
	return nil
}

func toPriceRecord(doc docstore.Document) domain.PriceRecord {
	return domain.PriceRecord{
		ID:       doc.ID,
		ItemName: doc.Fields.String(fieldItemName),
		Price:    doc.Fields.Decimal(fieldPrice),
		Metadata: projection.Metadata{
			CreatedAt: doc.Fields.Time(fieldCreatedAt),
			UpdatedAt: doc.Fields.Time(fieldUpdatedAt),
		},
	}
}
