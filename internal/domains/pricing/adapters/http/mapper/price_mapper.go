package mapper

import (
	"github.com/shopspring/decimal"

	pricingdomain "github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
)

// PriceLookup is the transport shape of a price query.
type PriceLookup struct {
	ItemName string           `json:"itemName"`
	Price    *decimal.Decimal `json:"price"`
	RecordID string           `json:"recordId,omitempty"`
}

// PendingEdit is a staged edit on the wire.
type PendingEdit struct {
	ItemName string          `json:"itemName"`
	Price    decimal.Decimal `json:"price"`
}

// CommitItem is one write of a commit.
type CommitItem struct {
	ItemName string `json:"itemName"`
	RecordID string `json:"recordId,omitempty"`
	Created  bool   `json:"created"`
	Error    string `json:"error,omitempty"`
}

// CommitResult summarises a commit.
type CommitResult struct {
	Attempted int          `json:"attempted"`
	Saved     int          `json:"saved"`
	Items     []CommitItem `json:"items"`
}

// BeverageItem is the transport shape of a beverage.
type BeverageItem struct {
	ID               string `json:"id,omitempty"`
	ItemName         string `json:"itemName"`
	PreviousDayCount int64  `json:"previousDayCount"`
	TodayCount       int64  `json:"todayCount"`
	Date             string `json:"date"`
}

// PriceStats counts priced items.
type PriceStats struct {
	BakeryPriced   int `json:"bakeryPriced"`
	BeveragePriced int `json:"beveragePriced"`
}

func FromLookup(name string, lookup pricingdomain.Lookup) PriceLookup {
	out := PriceLookup{ItemName: name, RecordID: lookup.RecordID}
	if lookup.Found() {
		price := lookup.Price.Decimal
		out.Price = &price
	}
	return out
}

func FromEdits(edits []pricingdomain.Edit) []PendingEdit {
	result := make([]PendingEdit, 0, len(edits))
	for _, edit := range edits {
		result = append(result, PendingEdit{ItemName: edit.ItemName, Price: edit.Price})
	}
	return result
}

func FromCommitResult(result pricingdomain.CommitResult) CommitResult {
	out := CommitResult{Attempted: result.Attempted, Saved: result.Saved, Items: make([]CommitItem, 0, len(result.Items))}
	for _, item := range result.Items {
		entry := CommitItem{ItemName: item.ItemName, RecordID: item.RecordID, Created: item.Created}
		if item.Err != nil {
			entry.Error = item.Err.Error()
		}
		out.Items = append(out.Items, entry)
	}
	return out
}

func FromBeverage(item pricingdomain.BeverageItem) BeverageItem {
	return BeverageItem{
		ID:               item.ID,
		ItemName:         item.ItemName,
		PreviousDayCount: item.PreviousDayCount,
		TodayCount:       item.TodayCount,
		Date:             item.Date,
	}
}

func FromBeverages(items []pricingdomain.BeverageItem) []BeverageItem {
	result := make([]BeverageItem, 0, len(items))
	for _, item := range items {
		result = append(result, FromBeverage(item))
	}
	return result
}

func FromStats(stats pricingdomain.PriceStats) PriceStats {
	return PriceStats{BakeryPriced: stats.BakeryPriced, BeveragePriced: stats.BeveragePriced}
}

func ToEdits(edits []PendingEdit) []pricingdomain.Edit {
	result := make([]pricingdomain.Edit, 0, len(edits))
	for _, edit := range edits {
		result = append(result, pricingdomain.Edit{ItemName: edit.ItemName, Price: edit.Price})
	}
	return result
}
