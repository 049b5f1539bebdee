package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
	"github.com/Apurer/bakery-ledger/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

const (
	fieldName      = "name"
	fieldOrder     = "order"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// Repository stores catalog items in the catalogItems collection.
type Repository struct {
	store docstore.Store
	now   func() time.Time
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRepository(store docstore.Store, opts ...Option) *Repository {
	r := &Repository{store: store, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	if err := r.ensureStore(); err != nil {
		return nil, err
	}
	docs, err := r.store.QueryAll(ctx, docstore.CollectionCatalogItems)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDomain(doc))
	}
	return items, nil
}

func (r *Repository) Insert(ctx context.Context, item domain.Item) (domain.Item, error) {
	if err := r.ensureStore(); err != nil {
		return domain.Item{}, err
	}
	now := r.now()
	item.CreatedAt, item.UpdatedAt = now, now
	id, err := r.store.Insert(ctx, docstore.CollectionCatalogItems, toFields(item))
	if err != nil {
		return domain.Item{}, err
	}
	item.ID = id
	return item, nil
}

// UpdateOrder writes a new sort key and stamps updatedAt.
func (r *Repository) UpdateOrder(ctx context.Context, id string, order int64) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	return r.store.Update(ctx, docstore.CollectionCatalogItems, id, docstore.Fields{
		fieldOrder:     order,
		fieldUpdatedAt: r.now(),
	})
}

func (r *Repository) Rename(ctx context.Context, id, name string) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	return r.store.Update(ctx, docstore.CollectionCatalogItems, id, docstore.Fields{
		fieldName:      name,
		fieldUpdatedAt: r.now(),
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	return r.store.Delete(ctx, docstore.CollectionCatalogItems, id)
}

func (r *Repository) ensureStore() error {
	if r == nil || r.store == nil {
		return errors.New("catalog document repository not configured")
	}
	return nil
}

func toFields(item domain.Item) docstore.Fields {
	return docstore.Fields{
		fieldName:      item.Name,
		fieldOrder:     item.Order,
		fieldCreatedAt: item.CreatedAt,
		fieldUpdatedAt: item.UpdatedAt,
	}
}

func toDomain(doc docstore.Document) domain.Item {
	return domain.Item{
		ID:    doc.ID,
		Name:  doc.Fields.String(fieldName),
		Order: doc.Fields.Int(fieldOrder),
		Metadata: projection.Metadata{
			CreatedAt: doc.Fields.Time(fieldCreatedAt),
			UpdatedAt: doc.Fields.Time(fieldUpdatedAt),
		},
	}
}
