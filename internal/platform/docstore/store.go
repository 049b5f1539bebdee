// Package docstore defines the document-oriented Data Store the bounded contexts persist through.
package docstore

import (
	"context"
	"errors"
)

// Collection names shared by the bounded contexts.
const (
	CollectionCatalogItems      = "catalogItems"
	CollectionPriceRecords      = "priceRecords"
	CollectionBeverageInventory = "beverageInventory"
	CollectionInventoryRecords  = "inventoryRecords"
	CollectionBeverageRecords   = "beverageRecords"
)

var (
	// ErrNotFound is returned when a document id does not exist in the collection.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable signals a transient failure reaching the store.
	ErrUnavailable = errors.New("document store unavailable")
	// ErrPermissionDenied signals the store rejected the request due to access policy.
	ErrPermissionDenied = errors.New("document store permission denied")
)

// Document is a stored document with its opaque identifier.
type Document struct {
	ID     string
	Fields Fields
}

// Store is the Data Store contract: whole-collection reads plus id-addressed writes.
// QueryAll returns documents in insertion order.
type Store interface {
	QueryAll(ctx context.Context, collection string) ([]Document, error)
	Insert(ctx context.Context, collection string, fields Fields) (string, error)
	Update(ctx context.Context, collection, id string, fields Fields) error
	Delete(ctx context.Context, collection, id string) error
}
