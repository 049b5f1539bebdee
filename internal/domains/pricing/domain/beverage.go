package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used for beverage items and ledgers.
const DateLayout = "2006-01-02"

// DefaultBeverageNames are listed when no beverage has been added yet.
var DefaultBeverageNames = []string{"Nescafe", "Nestea"}

// BeverageItem is a beverage tracked for pricing. Its price lives in the shared price list.
type BeverageItem struct {
	ID               string
	ItemName         string
	PreviousDayCount int64
	TodayCount       int64
	Date             string
}

// NewBeverageItem builds a beverage with zero counts dated on the given day.
func NewBeverageItem(name string, today time.Time) (BeverageItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return BeverageItem{}, ErrItemNameMissing
	}
	if strings.Contains(name, "/") {
		return BeverageItem{}, ErrItemNameSlash
	}
	return BeverageItem{ItemName: name, Date: today.Format(DateLayout)}, nil
}

// UniqueBeverages keeps the first item per name in fetched order.
func UniqueBeverages(items []BeverageItem) []BeverageItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]BeverageItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ItemName]; dup {
			continue
		}
		seen[item.ItemName] = struct{}{}
		out = append(out, item)
	}
	return out
}

// HasBeverageNamed reports a case-insensitive name match.
func HasBeverageNamed(items []BeverageItem, name string) bool {
	for _, item := range items {
		if strings.EqualFold(item.ItemName, name) {
			return true
		}
	}
	return false
}
