package domain

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"github.com/Apurer/bakery-ledger/internal/shared/projection"
)

// TempOrderGap is added to the larger of two sort keys to park the target during a swap.
const TempOrderGap int64 = 1000

var (
	ErrNameRequired  = errors.New("item name is required")
	ErrDuplicateName = errors.New("item already exists")
	ErrItemNotFound  = errors.New("catalog item not found")
	ErrNameHasSlash  = errors.New("item name cannot contain '/'")
)

// Item is an entry of the bakery catalog. Missing sort keys read as 0.
type Item struct {
	ID    string
	Name  string
	Order int64
	projection.Metadata
}

// Direction selects the neighbour a move swaps with.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// MoveOutcome reports what a move request did.
type MoveOutcome string

const (
	Moved      MoveOutcome = "moved"
	AtBoundary MoveOutcome = "at_boundary"
	Busy       MoveOutcome = "busy"
)

// Ordered returns a copy of items sorted ascending by Order. Ties keep the input sequence.
func Ordered(items []Item) []Item {
	out := slices.Clone(items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// NextOrder is the sort key for an appended item.
func NextOrder(items []Item) int64 {
	if len(items) == 0 {
		return 1
	}
	highest := items[0].Order
	for _, item := range items[1:] {
		highest = max(highest, item.Order)
	}
	return highest + 1
}

// NormalizeName trims surrounding whitespace and rejects empty names and names containing '/'.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameRequired
	}
	if strings.Contains(trimmed, "/") {
		return "", ErrNameHasSlash
	}
	return trimmed, nil
}

// HasExactName reports whether any item is named exactly name.
func HasExactName(items []Item, name string) bool {
	return slices.ContainsFunc(items, func(item Item) bool { return item.Name == name })
}

// NameTakenByOther reports a case-insensitive collision with an item other than id.
func NameTakenByOther(items []Item, id, name string) bool {
	return slices.ContainsFunc(items, func(item Item) bool {
		return item.ID != id && strings.EqualFold(item.Name, name)
	})
}

// FindByID returns the item with the given id.
func FindByID(items []Item, id string) (Item, bool) {
	idx := slices.IndexFunc(items, func(item Item) bool { return item.ID == id })
	if idx < 0 {
		return Item{}, false
	}
	return items[idx], true
}

// Filter keeps items whose name contains query, ignoring case. An empty query keeps all.
func Filter(items []Item, query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(items)
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			out = append(out, item)
		}
	}
	return out
}
