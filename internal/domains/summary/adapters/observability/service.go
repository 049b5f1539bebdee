package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	summarydomain "github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	summaryports "github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
)

const tracerName = "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/observability/service"

// Service decorates the summary service with tracing, logging, and metrics.
type Service struct {
	inner   summaryports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner summaryports.Service, opts ...Option) summaryports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) DailySummary(ctx context.Context, date string) (summarydomain.DailySummary, error) {
	ctx, span := s.tracer.Start(ctx, "SummaryService.DailySummary", trace.WithAttributes(attribute.String("summary.date", date)))
	defer span.End()

	summary, err := s.inner.DailySummary(ctx, date)
	if err != nil {
		return summarydomain.DailySummary{}, s.handleError(ctx, span, err, "failed to build daily summary", slog.String("date", date))
	}
	span.SetAttributes(
		attribute.Int("summary.inventory_rows", summary.InventoryRows),
		attribute.Int("summary.beverage_rows", summary.BeverageRows),
		attribute.Bool("summary.cash_balanced", summary.Cash.IsBalanced),
	)
	return summary, nil
}

func (s *Service) Ledger(ctx context.Context, date string) (summarydomain.CashLedger, error) {
	ctx, span := s.tracer.Start(ctx, "SummaryService.Ledger", trace.WithAttributes(attribute.String("summary.date", date)))
	defer span.End()

	ledger, err := s.inner.Ledger(ctx, date)
	if err != nil {
		return summarydomain.CashLedger{}, s.handleError(ctx, span, err, "failed to load cash ledger", slog.String("date", date))
	}
	return ledger, nil
}

func (s *Service) SaveLedger(ctx context.Context, date string, ledger summarydomain.CashLedger) (summarydomain.CashLedger, error) {
	ctx, span := s.tracer.Start(ctx, "SummaryService.SaveLedger", trace.WithAttributes(attribute.String("summary.date", date)))
	defer span.End()

	saved, err := s.inner.SaveLedger(ctx, date, ledger)
	if err != nil {
		return summarydomain.CashLedger{}, s.handleError(ctx, span, err, "failed to save cash ledger", slog.String("date", date))
	}
	rec := saved.Reconcile()
	s.metrics.recordLedgerSave(ctx, rec.IsBalanced)
	s.logInfo(ctx, "cash ledger saved",
		slog.String("date", date),
		slog.Bool("balanced", rec.IsBalanced),
		slog.String("difference", rec.Difference.StringFixed(2)),
	)
	return saved, nil
}

func (s *Service) ExportReport(ctx context.Context, date string, w io.Writer) error {
	ctx, span := s.tracer.Start(ctx, "SummaryService.ExportReport", trace.WithAttributes(attribute.String("summary.date", date)))
	defer span.End()

	counter := &countingWriter{w: w}
	if err := s.inner.ExportReport(ctx, date, counter); err != nil {
		return s.handleError(ctx, span, err, "failed to export summary report", slog.String("date", date))
	}
	span.SetAttributes(attribute.Int64("summary.report_bytes", counter.n))
	s.metrics.recordExport(ctx)
	s.logInfo(ctx, "summary report exported", slog.String("date", date), slog.Int64("bytes", counter.n))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type serviceMetrics struct {
	ledgerSaves metric.Int64Counter
	exports     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	saves, _ := m.Int64Counter("summary.service.ledger_saves", metric.WithDescription("Number of cash ledger saves"))
	exports, _ := m.Int64Counter("summary.service.reports_exported", metric.WithDescription("Number of summary reports exported"))
	return serviceMetrics{ledgerSaves: saves, exports: exports}
}

func (m serviceMetrics) recordLedgerSave(ctx context.Context, balanced bool) {
	if m.ledgerSaves == nil {
		return
	}
	m.ledgerSaves.Add(ctx, 1, metric.WithAttributes(attribute.Bool("summary.cash_balanced", balanced)))
}

func (m serviceMetrics) recordExport(ctx context.Context) {
	if m.exports == nil {
		return
	}
	m.exports.Add(ctx, 1)
}

var _ summaryports.Service = (*Service)(nil)
