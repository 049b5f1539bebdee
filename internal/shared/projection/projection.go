// Package projection holds the persistence bookkeeping embedded in catalog items and price records.
package projection

import "time"

// Metadata records when a document was first stored and last changed. Both are zero for
// values that never came back from a store.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
