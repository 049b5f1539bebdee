package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
	"github.com/Apurer/bakery-ledger/internal/shared/faults"
)

type fakeRecords struct {
	inventory []domain.InventoryRecord
	beverages []domain.BeverageRecord
	err       error
}

func (f *fakeRecords) Inventory(context.Context) ([]domain.InventoryRecord, error) {
	return f.inventory, f.err
}

func (f *fakeRecords) Beverages(context.Context) ([]domain.BeverageRecord, error) {
	return f.beverages, nil
}

type fakePrices struct {
	index domain.PriceMap
}

func (f fakePrices) PriceIndex(context.Context) (domain.PriceIndex, error) {
	return f.index, nil
}

type fakeLedgers struct {
	mu      sync.Mutex
	ledgers map[string]domain.CashLedger
	saveErr error
}

func newFakeLedgers() *fakeLedgers {
	return &fakeLedgers{ledgers: map[string]domain.CashLedger{}}
}

func (f *fakeLedgers) Load(_ context.Context, date string) (domain.CashLedger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledgers[date], nil
}

func (f *fakeLedgers) Save(_ context.Context, date string, ledger domain.CashLedger) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ledgers[date] = ledger
	return nil
}

type captureExporter struct {
	report domain.Report
}

func (c *captureExporter) Export(_ context.Context, report domain.Report, w io.Writer) error {
	c.report = report
	_, err := io.WriteString(w, "report:"+report.Date)
	return err
}

func (c *captureExporter) ContentType() string { return "text/plain" }
func (c *captureExporter) FileName(date string) string { return date + ".txt" }

var fixedNow = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

func newTestService(records *fakeRecords, ledgers *fakeLedgers, opts ...Option) *Service {
	prices := fakePrices{index: domain.PriceMap{"Nescafe": decimal.NewFromInt(80)}}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(records, prices, ledgers, opts...)
}

func TestDailySummaryFiltersByDayAndJoinsLedger(t *testing.T) {
	day := time.Date(2024, 3, 9, 7, 0, 0, 0, time.UTC)
	records := &fakeRecords{
		inventory: []domain.InventoryRecord{
			{ID: "i1", Category: "Buns", TotalItems: 10, SoldItems: 6, RemainingItems: 4, Price: decimal.NewFromInt(50), Timestamp: day},
			{ID: "i2", Category: "Buns", TotalItems: 99, Price: decimal.NewFromInt(50), Timestamp: day.AddDate(0, 0, -1)},
		},
		beverages: []domain.BeverageRecord{
			{ID: "b1", BeverageName: "Nescafe", TotalCups: 5, SoldCups: 5, Timestamp: day},
		},
	}
	ledgers := newFakeLedgers()
	ledgers.ledgers["2024-03-09"] = domain.CashLedger{InitialCash: "1000", TotalSales: "700", CashOut: "0", FinalCash: "1700"}

	svc := newTestService(records, ledgers)
	summary, err := svc.DailySummary(context.Background(), "2024-03-09")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09", summary.Date)
	assert.Equal(t, 1, summary.InventoryRows)
	assert.Equal(t, 1, summary.BeverageRows)
	assert.EqualValues(t, 10, summary.Stats.Bakery.TotalItems)
	assert.True(t, decimal.NewFromInt(400).Equal(summary.Stats.Beverage.SoldValue))
	assert.True(t, decimal.NewFromInt(700).Equal(summary.Stats.Grand.SoldValue))
	assert.True(t, summary.Cash.IsBalanced)
}

func TestDailySummaryRejectsBadDate(t *testing.T) {
	svc := newTestService(&fakeRecords{}, newFakeLedgers())
	_, err := svc.DailySummary(context.Background(), "March 9")
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestDailySummaryMapsStoreErrors(t *testing.T) {
	svc := newTestService(&fakeRecords{err: docstore.ErrPermissionDenied}, newFakeLedgers())
	_, err := svc.DailySummary(context.Background(), "2024-03-09")
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrPermissionDenied)
}

func TestSaveLedgerStampsAndPersistsRawValues(t *testing.T) {
	ledgers := newFakeLedgers()
	svc := newTestService(&fakeRecords{}, ledgers)

	saved, err := svc.SaveLedger(context.Background(), "2024-03-09", domain.CashLedger{CashierName: "Nimal", InitialCash: "12abc"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, saved.UpdatedAt)

	loaded, err := svc.Ledger(context.Background(), "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, "12abc", loaded.InitialCash)
	assert.Equal(t, "Nimal", loaded.CashierName)
}

func TestSaveLedgerMapsUnavailableStore(t *testing.T) {
	ledgers := newFakeLedgers()
	ledgers.saveErr = errors.New("connection refused")
	svc := newTestService(&fakeRecords{}, ledgers)

	_, err := svc.SaveLedger(context.Background(), "2024-03-09", domain.CashLedger{})
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrStoreUnavailable)
}

func TestExportReportPassesSummaryToExporter(t *testing.T) {
	exporter := &captureExporter{}
	ledgers := newFakeLedgers()
	ledgers.ledgers["2024-03-09"] = domain.CashLedger{CashierName: "Nimal", Notes: "till jammed"}
	svc := newTestService(&fakeRecords{}, ledgers, WithExporter(exporter))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportReport(context.Background(), "2024-03-09", &buf))
	assert.Equal(t, "report:2024-03-09", buf.String())
	assert.Equal(t, fixedNow, exporter.report.GeneratedAt)
	assert.Equal(t, "Nimal", exporter.report.Ledger.Cashier())
}

func TestExportReportWithoutExporter(t *testing.T) {
	svc := newTestService(&fakeRecords{}, newFakeLedgers())
	err := svc.ExportReport(context.Background(), "2024-03-09", io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrStoreUnavailable)
}
