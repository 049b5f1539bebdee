package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

var _ docstore.Store = (*Store)(nil)

// Store persists documents of every collection in a single PostgreSQL table using GORM.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore wires a PostgreSQL-backed document store. Caller manages DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// documentRecord maps a document to the shared documents table.
// Seq preserves insertion order since ids are random.
type documentRecord struct {
	Collection string          `gorm:"primaryKey;column:collection;type:varchar(64)"`
	ID         string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Seq        int64           `gorm:"column:seq;autoIncrement;index"`
	Fields     docstore.Fields `gorm:"column:fields;type:jsonb;serializer:json"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (documentRecord) TableName() string { return "documents" }

func (s *Store) QueryAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []documentRecord
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("seq ASC").
		Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	docs := make([]docstore.Document, 0, len(records))
	for i := range records {
		docs = append(docs, records[i].toDocument())
	}
	return docs, nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	if err := s.ensureDB(); err != nil {
		return "", err
	}
	now := s.now()
	record := documentRecord{
		Collection: collection,
		ID:         uuid.NewString(),
		Fields:     fields.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", translate(err)
	}
	return record.ID, nil
}

// Update merges the given fields into the stored document.
func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Fields) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record documentRecord
		if err := tx.First(&record, "collection = ? AND id = ?", collection, id).Error; err != nil {
			return err
		}
		record.Fields = record.Fields.Merge(fields)
		record.UpdatedAt = s.now()
		return tx.Save(&record).Error
	})
	return translate(err)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Delete(&documentRecord{}, "collection = ? AND id = ?", collection, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres document store not configured")
	}
	return nil
}

func (r documentRecord) toDocument() docstore.Document {
	fields := r.Fields
	if fields == nil {
		fields = docstore.Fields{}
	}
	return docstore.Document{ID: r.ID, Fields: fields}
}
