package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/bakery-ledger/internal/shared/projection"
)

var (
	ErrInvalidPrice    = errors.New("price must be a number")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrNoPendingEdits  = errors.New("no price changes to save")
	ErrItemNameMissing = errors.New("item name is required")
	ErrUnknownScope    = errors.New("unknown price scope")
	ErrDuplicateEdit   = errors.New("item priced more than once in one commit")
	ErrItemNameSlash   = errors.New("item name cannot contain '/'")
)

// PriceRecord is the price of an item name. Bakery items and beverages share the name space.
type PriceRecord struct {
	ID       string
	ItemName string
	Price    decimal.Decimal
	projection.Metadata
}

// Lookup is the result of a price query. Price.Valid is false when no record matches.
type Lookup struct {
	Price    decimal.NullDecimal
	RecordID string
}

func (l Lookup) Found() bool { return l.Price.Valid }

// Index resolves prices by exact item name. Matching is case and whitespace sensitive and
// the first record in fetched order wins.
type Index struct {
	records []PriceRecord
}

func NewIndex(records []PriceRecord) Index {
	return Index{records: records}
}

func (i Index) Lookup(name string) Lookup {
	for _, rec := range i.records {
		if rec.ItemName == name {
			return Lookup{Price: decimal.NewNullDecimal(rec.Price), RecordID: rec.ID}
		}
	}
	return Lookup{}
}

// UnitPrice returns the price for name, or zero when absent.
func (i Index) UnitPrice(name string) decimal.Decimal {
	if l := i.Lookup(name); l.Found() {
		return l.Price.Decimal
	}
	return decimal.Zero
}

func (i Index) Has(name string) bool { return i.Lookup(name).Found() }

func (i Index) Len() int { return len(i.records) }

// Scope distinguishes the two price editors, which treat blank and zero input differently.
type Scope string

const (
	ScopeBakery   Scope = "bakery"
	ScopeBeverage Scope = "beverage"
)

func ParseScope(raw string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(raw))) {
	case ScopeBakery:
		return ScopeBakery, nil
	case ScopeBeverage:
		return ScopeBeverage, nil
	default:
		return "", ErrUnknownScope
	}
}

// Edit is a staged price change.
type Edit struct {
	ItemName string
	Price    decimal.Decimal
}

// ValidateEdits checks a commit batch as a whole: every edit names an item, no price is
// negative and no item appears twice.
func ValidateEdits(edits []Edit) error {
	if len(edits) == 0 {
		return ErrNoPendingEdits
	}
	seen := make(map[string]struct{}, len(edits))
	for _, edit := range edits {
		if strings.TrimSpace(edit.ItemName) == "" {
			return ErrItemNameMissing
		}
		if edit.Price.IsNegative() {
			return fmt.Errorf("%w: %s", ErrNegativePrice, edit.ItemName)
		}
		if _, dup := seen[edit.ItemName]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEdit, edit.ItemName)
		}
		seen[edit.ItemName] = struct{}{}
	}
	return nil
}

// ParseEdit interprets raw editor input. drop is true when the input removes the staged edit.
//
// Bakery: blank or zero clears, non-numeric is rejected.
// Beverage: blank or non-numeric clears, zero is a real price.
func ParseEdit(scope Scope, raw string) (price decimal.Decimal, drop bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, true, nil
	}
	parsed, parseErr := decimal.NewFromString(trimmed)
	switch scope {
	case ScopeBakery:
		if parseErr != nil {
			return decimal.Zero, false, ErrInvalidPrice
		}
		if parsed.IsZero() {
			return decimal.Zero, true, nil
		}
	case ScopeBeverage:
		if parseErr != nil {
			return decimal.Zero, true, nil
		}
	default:
		return decimal.Zero, false, ErrUnknownScope
	}
	if parsed.IsNegative() {
		return decimal.Zero, false, ErrNegativePrice
	}
	return parsed, false, nil
}

// ItemResult is the outcome of one write in a commit.
type ItemResult struct {
	ItemName string
	RecordID string
	Created  bool
	Err      error
}

// CommitResult summarises a batch of price writes. Writes that succeeded stay committed
// even when others failed.
type CommitResult struct {
	Attempted int
	Saved     int
	Items     []ItemResult
}

// PriceStats counts items that have a price.
type PriceStats struct {
	BakeryPriced   int
	BeveragePriced int
}
