package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) List(ctx context.Context) ([]catalogdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list catalog")
	}
	span.SetAttributes(attribute.Int("catalog.items", len(result)))
	return result, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]catalogdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Search", trace.WithAttributes(attribute.String("catalog.query", query)))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search catalog", slog.String("query", query))
	}
	span.SetAttributes(attribute.Int("catalog.items", len(result)))
	return result, nil
}

func (s *Service) MoveUp(ctx context.Context, name string) (catalogports.MoveResult, error) {
	return s.move(ctx, "CatalogService.MoveUp", catalogdomain.Up, name, s.inner.MoveUp)
}

func (s *Service) MoveDown(ctx context.Context, name string) (catalogports.MoveResult, error) {
	return s.move(ctx, "CatalogService.MoveDown", catalogdomain.Down, name, s.inner.MoveDown)
}

func (s *Service) move(
	ctx context.Context,
	spanName string,
	dir catalogdomain.Direction,
	name string,
	call func(context.Context, string) (catalogports.MoveResult, error),
) (catalogports.MoveResult, error) {
	ctx, span := s.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("catalog.item", name), attribute.String("catalog.direction", dir.String())))
	defer span.End()

	s.logInfo(ctx, "moving catalog item", slog.String("item", name), slog.String("direction", dir.String()))
	result, err := call(ctx, name)
	if err != nil {
		return catalogports.MoveResult{}, s.handleError(ctx, span, err, "failed to move catalog item",
			slog.String("item", name), slog.String("direction", dir.String()))
	}
	span.SetAttributes(attribute.String("catalog.move.outcome", string(result.Outcome)))
	s.metrics.recordMove(ctx, dir, result.Outcome)
	s.logInfo(ctx, "catalog move finished", slog.String("item", name), slog.String("outcome", string(result.Outcome)))
	return result, nil
}

func (s *Service) AddItem(ctx context.Context, name string) (catalogdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddItem", trace.WithAttributes(attribute.String("catalog.item", name)))
	defer span.End()

	s.logInfo(ctx, "adding catalog item", slog.String("item", name))
	item, err := s.inner.AddItem(ctx, name)
	if err != nil {
		return catalogdomain.Item{}, s.handleError(ctx, span, err, "failed to add catalog item", slog.String("item", name))
	}
	s.metrics.recordMutation(ctx, "add")
	s.logInfo(ctx, "catalog item added", slog.String("item.id", item.ID), slog.Int64("order", item.Order))
	return item, nil
}

func (s *Service) RenameItem(ctx context.Context, id, newName string) (catalogdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RenameItem",
		trace.WithAttributes(attribute.String("catalog.item.id", id), attribute.String("catalog.item", newName)))
	defer span.End()

	s.logInfo(ctx, "renaming catalog item", slog.String("item.id", id), slog.String("name", newName))
	item, err := s.inner.RenameItem(ctx, id, newName)
	if err != nil {
		return catalogdomain.Item{}, s.handleError(ctx, span, err, "failed to rename catalog item", slog.String("item.id", id))
	}
	s.metrics.recordMutation(ctx, "rename")
	s.logInfo(ctx, "catalog item renamed", slog.String("item.id", id), slog.String("name", item.Name))
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) (catalogports.DeleteResult, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteItem", trace.WithAttributes(attribute.String("catalog.item.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting catalog item", slog.String("item.id", id))
	result, err := s.inner.DeleteItem(ctx, id)
	if err != nil {
		return catalogports.DeleteResult{}, s.handleError(ctx, span, err, "failed to delete catalog item", slog.String("item.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "catalog item deleted", slog.String("item.id", id), slog.Bool("price_removed", result.PriceRemoved))
	return result, nil
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
	moves     metric.Int64Counter
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	moves, _ := m.Int64Counter("catalog.service.moves", metric.WithDescription("Number of catalog move requests by outcome"))
	mutations, _ := m.Int64Counter("catalog.service.mutations", metric.WithDescription("Number of catalog items added, renamed or deleted"))
	return serviceMetrics{moves: moves, mutations: mutations}
}

func (m serviceMetrics) recordMove(ctx context.Context, dir catalogdomain.Direction, outcome catalogdomain.MoveOutcome) {
	if m.moves != nil {
		m.moves.Add(ctx, 1, metric.WithAttributes(
			attribute.String("catalog.direction", dir.String()),
			attribute.String("catalog.move.outcome", string(outcome)),
		))
	}
}

func (m serviceMetrics) recordMutation(ctx context.Context, kind string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("catalog.mutation", kind)))
	}
}

var _ catalogports.Service = (*Service)(nil)
