package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAggregateSumsBakeryAndBeverages(t *testing.T) {
	inventory := []InventoryRecord{
		{Category: "Buns", TotalItems: 10, SoldItems: 7, RemainingItems: 3, Price: dec("50")},
		{Category: "Bread", TotalItems: 4, SoldItems: 4, RemainingItems: 0, Price: dec("120.5")},
		{Category: "Buns", TotalItems: 2, SoldItems: 1, RemainingItems: 1, Price: dec("50")},
	}
	beverages := []BeverageRecord{
		{BeverageName: "Nescafe", TotalCups: 20, SoldCups: 15, RemainingCups: 5},
		{BeverageName: "Nestea", TotalCups: 10, SoldCups: 2, RemainingCups: 8},
		{BeverageName: "Milo", TotalCups: 3, SoldCups: 3, RemainingCups: 0},
	}
	prices := PriceMap{"Nescafe": dec("80"), "Nestea": dec("60")}

	stats := Aggregate(inventory, beverages, prices)

	assert.Equal(t, 2, stats.Bakery.Categories)
	assert.EqualValues(t, 16, stats.Bakery.TotalItems)
	assert.EqualValues(t, 12, stats.Bakery.SoldItems)
	assert.EqualValues(t, 4, stats.Bakery.RemainingItems)
	assert.True(t, dec("1082").Equal(stats.Bakery.TotalValue), stats.Bakery.TotalValue.String())
	assert.True(t, dec("882").Equal(stats.Bakery.SoldValue), stats.Bakery.SoldValue.String())
	assert.True(t, dec("200").Equal(stats.Bakery.RemainingValue), stats.Bakery.RemainingValue.String())

	assert.Equal(t, 3, stats.Beverage.Types)
	assert.EqualValues(t, 33, stats.Beverage.TotalCups)
	assert.True(t, dec("2200").Equal(stats.Beverage.TotalValue), stats.Beverage.TotalValue.String())
	assert.True(t, dec("1320").Equal(stats.Beverage.SoldValue), stats.Beverage.SoldValue.String())
	assert.True(t, dec("880").Equal(stats.Beverage.RemainingValue), stats.Beverage.RemainingValue.String())

	assert.True(t, dec("3282").Equal(stats.Grand.TotalValue))
	assert.True(t, dec("2202").Equal(stats.Grand.SoldValue))
	assert.True(t, dec("1080").Equal(stats.Grand.RemainingValue))
}

func TestAggregateEmptyInputsYieldZero(t *testing.T) {
	stats := Aggregate(nil, nil, nil)
	assert.True(t, stats.Equal(SummaryStats{}))
	assert.True(t, stats.Grand.TotalValue.IsZero())
}

func TestAggregateIgnoresRecordOrder(t *testing.T) {
	inventory := []InventoryRecord{
		{Category: "A", TotalItems: 3, SoldItems: 1, RemainingItems: 2, Price: dec("10.25")},
		{Category: "B", TotalItems: 5, SoldItems: 5, RemainingItems: 0, Price: dec("3.10")},
		{Category: "C", TotalItems: 1, SoldItems: 0, RemainingItems: 1, Price: dec("99.99")},
	}
	beverages := []BeverageRecord{
		{BeverageName: "Nescafe", TotalCups: 4, SoldCups: 1, RemainingCups: 3},
		{BeverageName: "Nestea", TotalCups: 7, SoldCups: 6, RemainingCups: 1},
	}
	prices := PriceMap{"Nescafe": dec("1.1"), "Nestea": dec("2.2")}

	forward := Aggregate(inventory, beverages, prices)
	reversedInv := []InventoryRecord{inventory[2], inventory[0], inventory[1]}
	reversedBev := []BeverageRecord{beverages[1], beverages[0]}
	backward := Aggregate(reversedInv, reversedBev, prices)

	assert.True(t, forward.Equal(backward))
}

func TestReconcileCash(t *testing.T) {
	balanced := ReconcileCash(dec("1000"), dec("500"), dec("200"), dec("1300"))
	assert.True(t, dec("1300").Equal(balanced.Expected))
	assert.True(t, balanced.Difference.IsZero())
	assert.True(t, balanced.IsBalanced)
	assert.Equal(t, BalancePerfect, balanced.Balance())

	short := ReconcileCash(dec("1000"), dec("500"), dec("200"), dec("1250"))
	assert.True(t, dec("-50").Equal(short.Difference))
	assert.False(t, short.IsBalanced)
	assert.Equal(t, BalanceDeficit, short.Balance())

	over := ReconcileCash(dec("0"), dec("0"), dec("0"), dec("0.01"))
	assert.False(t, over.IsBalanced, "tolerance is strict")
	assert.Equal(t, BalanceSurplus, over.Balance())

	near := ReconcileCash(dec("0"), dec("0"), dec("0"), dec("0.009"))
	assert.True(t, near.IsBalanced)
}

func TestParseAmountIsLenient(t *testing.T) {
	cases := map[string]string{
		"":        "0",
		"   ":     "0",
		"abc":     "0",
		"12.50":   "12.5",
		" 42 ":    "42",
		"12abc":   "12",
		"-3.5":    "-3.5",
		".75":     "0.75",
		"1e2":     "100",
		"1,000":   "1",
		"Rs. 100": "0",
	}
	for raw, want := range cases {
		assert.True(t, dec(want).Equal(ParseAmount(raw)), "%q -> %s", raw, ParseAmount(raw))
	}
}

func TestLedgerReconcileUsesParsedAmounts(t *testing.T) {
	ledger := CashLedger{InitialCash: "1000", TotalSales: "500", CashOut: "", FinalCash: "1500.004"}
	rec := ledger.Reconcile()
	assert.True(t, rec.IsBalanced)
	assert.True(t, rec.CashOut.IsZero())
	assert.Equal(t, "Not specified", ledger.Cashier())
	assert.False(t, ledger.HasNotes())
}

func TestParseDateAndOnDay(t *testing.T) {
	date, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", date)

	_, err = ParseDate("09/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	colombo := time.FixedZone("IST", 5*3600+1800)
	assert.True(t, OnDay(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), "2024-03-09"))
	assert.False(t, OnDay(time.Date(2024, 3, 10, 2, 0, 0, 0, colombo), "2024-03-10"), "compares the UTC day")
	assert.False(t, OnDay(time.Time{}, "0001-01-01"))
}

func TestFiltersKeepOnlyTheDay(t *testing.T) {
	day := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	inv := InventoryOn([]InventoryRecord{
		{ID: "a", Timestamp: day},
		{ID: "b", Timestamp: day.AddDate(0, 0, 1)},
	}, "2024-03-09")
	require.Len(t, inv, 1)
	assert.Equal(t, "a", inv[0].ID)

	bev := BeveragesOn([]BeverageRecord{{ID: "x", Timestamp: day.AddDate(0, 0, -1)}}, "2024-03-09")
	assert.Empty(t, bev)
}
