package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	summarydomain "github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
)

type BakeryStats struct {
	Categories     int             `json:"categories"`
	TotalItems     int64           `json:"totalItems"`
	SoldItems      int64           `json:"soldItems"`
	RemainingItems int64           `json:"remainingItems"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	SoldValue      decimal.Decimal `json:"soldValue"`
	RemainingValue decimal.Decimal `json:"remainingValue"`
}

type BeverageStats struct {
	Types          int             `json:"types"`
	TotalCups      int64           `json:"totalCups"`
	SoldCups       int64           `json:"soldCups"`
	RemainingCups  int64           `json:"remainingCups"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	SoldValue      decimal.Decimal `json:"soldValue"`
	RemainingValue decimal.Decimal `json:"remainingValue"`
}

type GrandTotal struct {
	TotalValue     decimal.Decimal `json:"totalValue"`
	SoldValue      decimal.Decimal `json:"soldValue"`
	RemainingValue decimal.Decimal `json:"remainingValue"`
}

// CashReconciliation is the transport shape of a reconciled drawer.
type CashReconciliation struct {
	Initial    decimal.Decimal `json:"initialCash"`
	Sales      decimal.Decimal `json:"totalSales"`
	CashOut    decimal.Decimal `json:"cashOut"`
	Final      decimal.Decimal `json:"finalCash"`
	Expected   decimal.Decimal `json:"expectedFinal"`
	Difference decimal.Decimal `json:"difference"`
	IsBalanced bool            `json:"isBalanced"`
	Balance    string          `json:"balance"`
}

// CashLedger carries the raw ledger entries both ways.
type CashLedger struct {
	CashierName string     `json:"cashierName"`
	InitialCash string     `json:"initialCash"`
	FinalCash   string     `json:"finalCash"`
	TotalSales  string     `json:"totalSales"`
	CashOut     string     `json:"cashOut"`
	Notes       string     `json:"notes"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type DailySummary struct {
	Date          string             `json:"date"`
	Bakery        BakeryStats        `json:"bakery"`
	Beverage      BeverageStats      `json:"beverage"`
	GrandTotal    GrandTotal         `json:"grandTotal"`
	Ledger        CashLedger         `json:"ledger"`
	Cash          CashReconciliation `json:"cash"`
	InventoryRows int                `json:"inventoryRows"`
	BeverageRows  int                `json:"beverageRows"`
}

func FromDomainLedger(ledger summarydomain.CashLedger) CashLedger {
	out := CashLedger{
		CashierName: ledger.CashierName,
		InitialCash: ledger.InitialCash,
		FinalCash:   ledger.FinalCash,
		TotalSales:  ledger.TotalSales,
		CashOut:     ledger.CashOut,
		Notes:       ledger.Notes,
	}
	if !ledger.UpdatedAt.IsZero() {
		ts := ledger.UpdatedAt
		out.UpdatedAt = &ts
	}
	return out
}

func ToDomainLedger(ledger CashLedger) summarydomain.CashLedger {
	return summarydomain.CashLedger{
		CashierName: ledger.CashierName,
		InitialCash: ledger.InitialCash,
		FinalCash:   ledger.FinalCash,
		TotalSales:  ledger.TotalSales,
		CashOut:     ledger.CashOut,
		Notes:       ledger.Notes,
	}
}

func FromReconciliation(rec summarydomain.CashReconciliation) CashReconciliation {
	return CashReconciliation{
		Initial:    rec.Initial,
		Sales:      rec.Sales,
		CashOut:    rec.CashOut,
		Final:      rec.Final,
		Expected:   rec.Expected,
		Difference: rec.Difference,
		IsBalanced: rec.IsBalanced,
		Balance:    string(rec.Balance()),
	}
}

func FromDailySummary(summary summarydomain.DailySummary) DailySummary {
	b := summary.Stats.Bakery
	v := summary.Stats.Beverage
	g := summary.Stats.Grand
	return DailySummary{
		Date: summary.Date,
		Bakery: BakeryStats{
			Categories:     b.Categories,
			TotalItems:     b.TotalItems,
			SoldItems:      b.SoldItems,
			RemainingItems: b.RemainingItems,
			TotalValue:     b.TotalValue,
			SoldValue:      b.SoldValue,
			RemainingValue: b.RemainingValue,
		},
		Beverage: BeverageStats{
			Types:          v.Types,
			TotalCups:      v.TotalCups,
			SoldCups:       v.SoldCups,
			RemainingCups:  v.RemainingCups,
			TotalValue:     v.TotalValue,
			SoldValue:      v.SoldValue,
			RemainingValue: v.RemainingValue,
		},
		GrandTotal: GrandTotal{
			TotalValue:     g.TotalValue,
			SoldValue:      g.SoldValue,
			RemainingValue: g.RemainingValue,
		},
		Ledger:        FromDomainLedger(summary.Ledger),
		Cash:          FromReconciliation(summary.Cash),
		InventoryRows: summary.InventoryRows,
		BeverageRows:  summary.BeverageRows,
	}
}
