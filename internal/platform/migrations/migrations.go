package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the document store shared by the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&documentRecord{})
}

// Document schema mirrors the docstore Postgres adapter.
type documentRecord struct {
	Collection string         `gorm:"primaryKey;column:collection;type:varchar(64)"`
	ID         string         `gorm:"primaryKey;column:id;type:varchar(64)"`
	Seq        int64          `gorm:"column:seq;autoIncrement;index"`
	Fields     map[string]any `gorm:"column:fields;type:jsonb;serializer:json"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (documentRecord) TableName() string { return "documents" }
