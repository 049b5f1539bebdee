package ports

import (
	"context"
	"io"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
)

// Service exposes daily summary use cases.
type Service interface {
	DailySummary(ctx context.Context, date string) (domain.DailySummary, error)
	Ledger(ctx context.Context, date string) (domain.CashLedger, error)
	SaveLedger(ctx context.Context, date string, ledger domain.CashLedger) (domain.CashLedger, error)
	ExportReport(ctx context.Context, date string, w io.Writer) error
}
