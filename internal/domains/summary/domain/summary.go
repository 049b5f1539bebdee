package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day key used for summaries and ledgers.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a day key is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("date must use the YYYY-MM-DD format")

// InventoryRecord is a bakery stock snapshot for one category.
type InventoryRecord struct {
	ID             string
	Category       string
	TotalItems     int64
	SoldItems      int64
	RemainingItems int64
	Price          decimal.Decimal
	Timestamp      time.Time
}

// BeverageRecord is a cup count snapshot for one beverage.
type BeverageRecord struct {
	ID            string
	BeverageName  string
	TotalCups     int64
	SoldCups      int64
	RemainingCups int64
	Timestamp     time.Time
}

// PriceIndex resolves a beverage unit price by exact name. Unknown names price at zero.
type PriceIndex interface {
	UnitPrice(name string) decimal.Decimal
}

// PriceMap is a PriceIndex backed by a plain map.
type PriceMap map[string]decimal.Decimal

func (m PriceMap) UnitPrice(name string) decimal.Decimal {
	if price, ok := m[name]; ok {
		return price
	}
	return decimal.Zero
}

type BakeryStats struct {
	Categories     int
	TotalItems     int64
	SoldItems      int64
	RemainingItems int64
	TotalValue     decimal.Decimal
	SoldValue      decimal.Decimal
	RemainingValue decimal.Decimal
}

type BeverageStats struct {
	Types          int
	TotalCups      int64
	SoldCups       int64
	RemainingCups  int64
	TotalValue     decimal.Decimal
	SoldValue      decimal.Decimal
	RemainingValue decimal.Decimal
}

type GrandTotal struct {
	TotalValue     decimal.Decimal
	SoldValue      decimal.Decimal
	RemainingValue decimal.Decimal
}

// SummaryStats is the aggregate of one day's inventory and beverage records.
type SummaryStats struct {
	Bakery   BakeryStats
	Beverage BeverageStats
	Grand    GrandTotal
}

// Equal compares two aggregates by value, ignoring decimal representation.
func (s SummaryStats) Equal(o SummaryStats) bool {
	b, ob := s.Bakery, o.Bakery
	v, ov := s.Beverage, o.Beverage
	return b.Categories == ob.Categories &&
		b.TotalItems == ob.TotalItems && b.SoldItems == ob.SoldItems && b.RemainingItems == ob.RemainingItems &&
		b.TotalValue.Equal(ob.TotalValue) && b.SoldValue.Equal(ob.SoldValue) && b.RemainingValue.Equal(ob.RemainingValue) &&
		v.Types == ov.Types &&
		v.TotalCups == ov.TotalCups && v.SoldCups == ov.SoldCups && v.RemainingCups == ov.RemainingCups &&
		v.TotalValue.Equal(ov.TotalValue) && v.SoldValue.Equal(ov.SoldValue) && v.RemainingValue.Equal(ov.RemainingValue) &&
		s.Grand.TotalValue.Equal(o.Grand.TotalValue) && s.Grand.SoldValue.Equal(o.Grand.SoldValue) &&
		s.Grand.RemainingValue.Equal(o.Grand.RemainingValue)
}

// Aggregate sums the records. Bakery values use each record's own price; beverage
// values use the unit price looked up by beverage name. Record order does not matter.
func Aggregate(inventory []InventoryRecord, beverages []BeverageRecord, prices PriceIndex) SummaryStats {
	var stats SummaryStats

	categories := make(map[string]struct{}, len(inventory))
	bakery := &stats.Bakery
	for _, rec := range inventory {
		categories[rec.Category] = struct{}{}
		bakery.TotalItems += rec.TotalItems
		bakery.SoldItems += rec.SoldItems
		bakery.RemainingItems += rec.RemainingItems
		bakery.TotalValue = bakery.TotalValue.Add(rec.Price.Mul(decimal.NewFromInt(rec.TotalItems)))
		bakery.SoldValue = bakery.SoldValue.Add(rec.Price.Mul(decimal.NewFromInt(rec.SoldItems)))
		bakery.RemainingValue = bakery.RemainingValue.Add(rec.Price.Mul(decimal.NewFromInt(rec.RemainingItems)))
	}
	bakery.Categories = len(categories)

	types := make(map[string]struct{}, len(beverages))
	bev := &stats.Beverage
	for _, rec := range beverages {
		types[rec.BeverageName] = struct{}{}
		unit := decimal.Zero
		if prices != nil {
			unit = prices.UnitPrice(rec.BeverageName)
		}
		bev.TotalCups += rec.TotalCups
		bev.SoldCups += rec.SoldCups
		bev.RemainingCups += rec.RemainingCups
		bev.TotalValue = bev.TotalValue.Add(unit.Mul(decimal.NewFromInt(rec.TotalCups)))
		bev.SoldValue = bev.SoldValue.Add(unit.Mul(decimal.NewFromInt(rec.SoldCups)))
		bev.RemainingValue = bev.RemainingValue.Add(unit.Mul(decimal.NewFromInt(rec.RemainingCups)))
	}
	bev.Types = len(types)

	stats.Grand = GrandTotal{
		TotalValue:     bakery.TotalValue.Add(bev.TotalValue),
		SoldValue:      bakery.SoldValue.Add(bev.SoldValue),
		RemainingValue: bakery.RemainingValue.Add(bev.RemainingValue),
	}
	return stats
}

// ParseDate validates a YYYY-MM-DD day key.
func ParseDate(raw string) (string, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// OnDay reports whether ts falls on the given UTC calendar day.
func OnDay(ts time.Time, date string) bool {
	if ts.IsZero() {
		return false
	}
	return ts.UTC().Format(DateLayout) == date
}

func InventoryOn(records []InventoryRecord, date string) []InventoryRecord {
	out := make([]InventoryRecord, 0, len(records))
	for _, rec := range records {
		if OnDay(rec.Timestamp, date) {
			out = append(out, rec)
		}
	}
	return out
}

func BeveragesOn(records []BeverageRecord, date string) []BeverageRecord {
	out := make([]BeverageRecord, 0, len(records))
	for _, rec := range records {
		if OnDay(rec.Timestamp, date) {
			out = append(out, rec)
		}
	}
	return out
}
