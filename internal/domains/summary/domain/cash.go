package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest absolute difference still treated as balanced.
var BalanceTolerance = decimal.New(1, -2)

// Balance labels the sign of a reconciliation difference.
type Balance string

const (
	BalancePerfect Balance = "perfect"
	BalanceSurplus Balance = "surplus"
	BalanceDeficit Balance = "deficit"
)

// CashReconciliation compares the counted drawer against the expected amount.
type CashReconciliation struct {
	Initial    decimal.Decimal
	Sales      decimal.Decimal
	CashOut    decimal.Decimal
	Final      decimal.Decimal
	Expected   decimal.Decimal
	Difference decimal.Decimal
	IsBalanced bool
}

// ReconcileCash computes expected = initial + sales - cashOut and difference = final - expected.
func ReconcileCash(initial, sales, cashOut, final decimal.Decimal) CashReconciliation {
	expected := initial.Add(sales).Sub(cashOut)
	diff := final.Sub(expected)
	return CashReconciliation{
		Initial:    initial,
		Sales:      sales,
		CashOut:    cashOut,
		Final:      final,
		Expected:   expected,
		Difference: diff,
		IsBalanced: diff.Abs().LessThan(BalanceTolerance),
	}
}

func (c CashReconciliation) Balance() Balance {
	switch {
	case c.IsBalanced:
		return BalancePerfect
	case c.Difference.IsPositive():
		return BalanceSurplus
	default:
		return BalanceDeficit
	}
}

// CashLedger holds the cashier's entries for one day as typed by the user.
type CashLedger struct {
	CashierName string
	InitialCash string
	FinalCash   string
	TotalSales  string
	CashOut     string
	Notes       string
	UpdatedAt   time.Time
}

// Reconcile parses the raw amounts and reconciles them.
func (l CashLedger) Reconcile() CashReconciliation {
	return ReconcileCash(
		ParseAmount(l.InitialCash),
		ParseAmount(l.TotalSales),
		ParseAmount(l.CashOut),
		ParseAmount(l.FinalCash),
	)
}

// Cashier returns the cashier name or a placeholder when none was entered.
func (l CashLedger) Cashier() string {
	if name := strings.TrimSpace(l.CashierName); name != "" {
		return name
	}
	return "Not specified"
}

func (l CashLedger) HasNotes() bool {
	return strings.TrimSpace(l.Notes) != ""
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading number of raw. Empty or unparseable input is zero.
func ParseAmount(raw string) decimal.Decimal {
	match := leadingNumber.FindString(strings.TrimSpace(raw))
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Report is everything the daily PDF renders.
type Report struct {
	Date        string
	Ledger      CashLedger
	Cash        CashReconciliation
	Stats       SummaryStats
	GeneratedAt time.Time
}

// DailySummary joins one day's aggregate with its ledger.
type DailySummary struct {
	Date          string
	Stats         SummaryStats
	Ledger        CashLedger
	Cash          CashReconciliation
	InventoryRows int
	BeverageRows  int
}

func (d DailySummary) Report(generatedAt time.Time) Report {
	return Report{
		Date:        d.Date,
		Ledger:      d.Ledger,
		Cash:        d.Cash,
		Stats:       d.Stats,
		GeneratedAt: generatedAt,
	}
}
