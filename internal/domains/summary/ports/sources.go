package ports

import (
	"context"
	"io"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
)

// RecordSource reads the stock snapshots the summary aggregates.
type RecordSource interface {
	Inventory(ctx context.Context) ([]domain.InventoryRecord, error)
	Beverages(ctx context.Context) ([]domain.BeverageRecord, error)
}

// PriceSource supplies beverage unit prices.
type PriceSource interface {
	PriceIndex(ctx context.Context) (domain.PriceIndex, error)
}

// LedgerStore keeps per-day cash ledgers. The cashier name is shared across days.
type LedgerStore interface {
	Load(ctx context.Context, date string) (domain.CashLedger, error)
	Save(ctx context.Context, date string, ledger domain.CashLedger) error
}

// ReportExporter renders a report document.
type ReportExporter interface {
	Export(ctx context.Context, report domain.Report, w io.Writer) error
	ContentType() string
	FileName(date string) string
}
