package mapper

import (
	"time"

	catalogdomain "github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
)

// CatalogItem is the transport shape of a catalog entry.
type CatalogItem struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Order     int64      `json:"order"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// MoveResult is the transport shape of a move outcome.
type MoveResult struct {
	Outcome string        `json:"outcome"`
	Items   []CatalogItem `json:"items"`
}

// FromDomainItem converts a domain item to the transport representation.
func FromDomainItem(item catalogdomain.Item) CatalogItem {
	return CatalogItem{
		ID:        item.ID,
		Name:      item.Name,
		Order:     item.Order,
		CreatedAt: optionalTime(item.CreatedAt),
		UpdatedAt: optionalTime(item.UpdatedAt),
	}
}

func FromDomainItems(items []catalogdomain.Item) []CatalogItem {
	result := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}

func FromMoveResult(result catalogports.MoveResult) MoveResult {
	return MoveResult{Outcome: string(result.Outcome), Items: FromDomainItems(result.Items)}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
