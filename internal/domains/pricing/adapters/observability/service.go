package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	pricingdomain "github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	pricingports "github.com/Apurer/bakery-ledger/internal/domains/pricing/ports"
)

const tracerName = "github.com/Apurer/bakery-ledger/internal/domains/pricing/adapters/observability/service"

// Service decorates the pricing service with tracing, logging, and metrics.
type Service struct {
	inner   pricingports.Service
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

// New wraps the core pricing service.
func New(inner pricingports.Service, opts ...Option) pricingports.Service {
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

func (s *Service) GetPrice(ctx context.Context, name string) (pricingdomain.Lookup, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.GetPrice", trace.WithAttributes(attribute.String("price.item", name)))
	defer span.End()

	result, err := s.inner.GetPrice(ctx, name)
	if err != nil {
		return pricingdomain.Lookup{}, s.handleError(ctx, span, err, "failed to look up price", slog.String("item", name))
	}
	span.SetAttributes(attribute.Bool("price.found", result.Found()))
	return result, nil
}

func (s *Service) PriceIndex(ctx context.Context) (pricingdomain.Index, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.PriceIndex")
	defer span.End()

	idx, err := s.inner.PriceIndex(ctx)
	if err != nil {
		return pricingdomain.Index{}, s.handleError(ctx, span, err, "failed to load price index")
	}
	span.SetAttributes(attribute.Int("price.records", idx.Len()))
	return idx, nil
}

func (s *Service) SetPendingEdit(ctx context.Context, scope pricingdomain.Scope, name, raw string) error {
	ctx, span := s.tracer.Start(ctx, "PricingService.SetPendingEdit",
		trace.WithAttributes(attribute.String("price.scope", string(scope)), attribute.String("price.item", name)))
	defer span.End()

	if err := s.inner.SetPendingEdit(ctx, scope, name, raw); err != nil {
		return s.handleError(ctx, span, err, "failed to stage price edit",
			slog.String("scope", string(scope)), slog.String("item", name), slog.String("raw", raw))
	}
	return nil
}

func (s *Service) PendingEdits(ctx context.Context, scope pricingdomain.Scope) []pricingdomain.Edit {
	return s.inner.PendingEdits(ctx, scope)
}

func (s *Service) CommitEdits(ctx context.Context, edits []pricingdomain.Edit) (pricingdomain.CommitResult, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.CommitEdits", trace.WithAttributes(attribute.Int("price.edits", len(edits))))
	defer span.End()

	s.logInfo(ctx, "committing price edits", slog.Int("edits", len(edits)))
	result, err := s.inner.CommitEdits(ctx, edits)
	return result, s.finishCommit(ctx, span, "", result, err)
}

func (s *Service) CommitPending(ctx context.Context, scope pricingdomain.Scope) (pricingdomain.CommitResult, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.CommitPending", trace.WithAttributes(attribute.String("price.scope", string(scope))))
	defer span.End()

	s.logInfo(ctx, "committing pending price edits", slog.String("scope", string(scope)))
	result, err := s.inner.CommitPending(ctx, scope)
	return result, s.finishCommit(ctx, span, scope, result, err)
}

// finishCommit logs each failed item individually; the caller only sees the aggregate error.
func (s *Service) finishCommit(ctx context.Context, span trace.Span, scope pricingdomain.Scope, result pricingdomain.CommitResult, err error) error {
	span.SetAttributes(attribute.Int("price.attempted", result.Attempted), attribute.Int("price.saved", result.Saved))
	s.metrics.recordCommit(ctx, scope, result)
	for _, item := range result.Items {
		if item.Err != nil {
			s.logError(ctx, "price write failed", item.Err, slog.String("item", item.ItemName), slog.Bool("created", item.Created))
		}
	}
	if err != nil {
		return s.handleError(ctx, span, err, "failed to commit price edits",
			slog.Int("attempted", result.Attempted), slog.Int("saved", result.Saved))
	}
	s.logInfo(ctx, "price edits committed", slog.Int("saved", result.Saved))
	return nil
}

func (s *Service) DeletePrice(ctx context.Context, name string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.DeletePrice", trace.WithAttributes(attribute.String("price.item", name)))
	defer span.End()

	removed, err := s.inner.DeletePrice(ctx, name)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to delete price", slog.String("item", name))
	}
	s.logInfo(ctx, "price delete finished", slog.String("item", name), slog.Bool("removed", removed))
	return removed, nil
}

func (s *Service) RenamePrice(ctx context.Context, oldName, newName string) error {
	ctx, span := s.tracer.Start(ctx, "PricingService.RenamePrice",
		trace.WithAttributes(attribute.String("price.item", oldName), attribute.String("price.new_item", newName)))
	defer span.End()

	if err := s.inner.RenamePrice(ctx, oldName, newName); err != nil {
		return s.handleError(ctx, span, err, "failed to rename price", slog.String("from", oldName), slog.String("to", newName))
	}
	s.logInfo(ctx, "price renamed", slog.String("from", oldName), slog.String("to", newName))
	return nil
}

func (s *Service) AddBeverage(ctx context.Context, name string) (pricingdomain.BeverageItem, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.AddBeverage", trace.WithAttributes(attribute.String("beverage.name", name)))
	defer span.End()

	item, err := s.inner.AddBeverage(ctx, name)
	if err != nil {
		return pricingdomain.BeverageItem{}, s.handleError(ctx, span, err, "failed to add beverage", slog.String("beverage", name))
	}
	s.logInfo(ctx, "beverage added", slog.String("beverage", item.ItemName), slog.String("beverage.id", item.ID))
	return item, nil
}

func (s *Service) ListBeverages(ctx context.Context) ([]pricingdomain.BeverageItem, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.ListBeverages")
	defer span.End()

	items, err := s.inner.ListBeverages(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list beverages")
	}
	span.SetAttributes(attribute.Int("beverage.count", len(items)))
	return items, nil
}

func (s *Service) Stats(ctx context.Context, bakeryNames []string) (pricingdomain.PriceStats, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.Stats")
	defer span.End()

	stats, err := s.inner.Stats(ctx, bakeryNames)
	if err != nil {
		return pricingdomain.PriceStats{}, s.handleError(ctx, span, err, "failed to compute price stats")
	}
	return stats, nil
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

type serviceMetrics struct {
	pricesSaved  metric.Int64Counter
	pricesFailed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	saved, _ := m.Int64Counter("pricing.service.prices_saved", metric.WithDescription("Number of price records written"))
	failed, _ := m.Int64Counter("pricing.service.prices_failed", metric.WithDescription("Number of price writes that failed"))
	return serviceMetrics{pricesSaved: saved, pricesFailed: failed}
}

func (m serviceMetrics) recordCommit(ctx context.Context, scope pricingdomain.Scope, result pricingdomain.CommitResult) {
	attrs := metric.WithAttributes(attribute.String("price.scope", string(scope)))
	if m.pricesSaved != nil && result.Saved > 0 {
		m.pricesSaved.Add(ctx, int64(result.Saved), attrs)
	}
	if failed := result.Attempted - result.Saved; m.pricesFailed != nil && failed > 0 {
		m.pricesFailed.Add(ctx, int64(failed), attrs)
	}
}

var _ pricingports.Service = (*Service)(nil)
