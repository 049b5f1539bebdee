package docstore

import (
	"context"
	"errors"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

var _ ports.RecordSource = (*RecordReader)(nil)

// RecordReader reads inventory and beverage snapshots from the document store.
type RecordReader struct {
	store docstore.Store
}

func NewRecordReader(store docstore.Store) *RecordReader {
	return &RecordReader{store: store}
}

func (r *RecordReader) Inventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("summary record reader not configured")
	}
	docs, err := r.store.QueryAll(ctx, docstore.CollectionInventoryRecords)
	if err != nil {
		return nil, err
	}
	records := make([]domain.InventoryRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, domain.InventoryRecord{
			ID:             doc.ID,
			Category:       doc.Fields.String("category"),
			TotalItems:     doc.Fields.Int("totalItems"),
			SoldItems:      doc.Fields.Int("soldItems"),
			RemainingItems: doc.Fields.Int("remainingItems"),
			Price:          doc.Fields.Decimal("price"),
			Timestamp:      doc.Fields.Time("timestamp"),
		})
	}
	return records, nil
}

func (r *RecordReader) Beverages(ctx context.Context) ([]domain.BeverageRecord, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("summary record reader not configured")
	}
	docs, err := r.store.QueryAll(ctx, docstore.CollectionBeverageRecords)
	if err != nil {
		return nil, err
	}
	records := make([]domain.BeverageRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, domain.BeverageRecord{
			ID:            doc.ID,
			BeverageName:  doc.Fields.String("beverageName"),
			TotalCups:     doc.Fields.Int("totalCups"),
			SoldCups:      doc.Fields.Int("soldCups"),
			RemainingCups: doc.Fields.Int("remainingCups"),
			Timestamp:     doc.Fields.Time("timestamp"),
		})
	}
	return records, nil
}
