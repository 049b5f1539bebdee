package application

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
)

// Service aggregates a day's records and keeps its cash ledger.
type Service struct {
	records  ports.RecordSource
	prices   ports.PriceSource
	ledgers  ports.LedgerStore
	exporter ports.ReportExporter
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithExporter(exporter ports.ReportExporter) Option {
	return func(s *Service) {
		s.exporter = exporter
	}
}

func NewService(records ports.RecordSource, prices ports.PriceSource, ledgers ports.LedgerStore, opts ...Option) *Service {
	s := &Service{
		records: records,
		prices:  prices,
		ledgers: ledgers,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// DailySummary loads the day's records and prices concurrently, then aggregates them
// and joins the day's ledger.
func (s *Service) DailySummary(ctx context.Context, date string) (domain.DailySummary, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return domain.DailySummary{}, mapError(err)
	}

	var (
		inventory []domain.InventoryRecord
		beverages []domain.BeverageRecord
		index     domain.PriceIndex
		ledger    domain.CashLedger
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.records.Inventory(gctx)
		inventory = domain.InventoryOn(records, day)
		return err
	})
	g.Go(func() error {
		records, err := s.records.Beverages(gctx)
		beverages = domain.BeveragesOn(records, day)
		return err
	})
	g.Go(func() error {
		var err error
		index, err = s.prices.PriceIndex(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = s.ledgers.Load(gctx, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DailySummary{}, mapError(err)
	}

	return domain.DailySummary{
		Date:          day,
		Stats:         domain.Aggregate(inventory, beverages, index),
		Ledger:        ledger,
		Cash:          ledger.Reconcile(),
		InventoryRows: len(inventory),
		BeverageRows:  len(beverages),
	}, nil
}

func (s *Service) Ledger(ctx context.Context, date string) (domain.CashLedger, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return domain.CashLedger{}, mapError(err)
	}
	ledger, err := s.ledgers.Load(ctx, day)
	if err != nil {
		return domain.CashLedger{}, mapError(err)
	}
	return ledger, nil
}

// SaveLedger stores the raw entries as typed. Amounts are only parsed when reconciled.
func (s *Service) SaveLedger(ctx context.Context, date string, ledger domain.CashLedger) (domain.CashLedger, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return domain.CashLedger{}, mapError(err)
	}
	ledger.UpdatedAt = s.now().UTC()
	if err := s.ledgers.Save(ctx, day, ledger); err != nil {
		return domain.CashLedger{}, mapError(err)
	}
	return ledger, nil
}

// ExportReport renders the day's summary through the configured exporter.
func (s *Service) ExportReport(ctx context.Context, date string, w io.Writer) error {
	if s.exporter == nil {
		return mapError(errors.New("report exporter not configured"))
	}
	summary, err := s.DailySummary(ctx, date)
	if err != nil {
		return err
	}
	if err := s.exporter.Export(ctx, summary.Report(s.now()), w); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
