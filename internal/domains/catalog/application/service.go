package application

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
)

// DefaultSettleDelay is the pause between the last swap write and the refresh.
const DefaultSettleDelay = 500 * time.Millisecond

// Service orchestrates catalog use cases. Moves are serialised per instance: a move issued
// while another is in flight is rejected, not queued.
type Service struct {
	repo        ports.Repository
	swaps       ports.SwapExecutor
	prices      ports.PriceCascade
	listeners   []ports.RefreshListener
	settleDelay time.Duration
	busy        atomic.Bool
}

type Option func(*Service)

func WithSettleDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.settleDelay = d
		}
	}
}

func WithPriceCascade(prices ports.PriceCascade) Option {
	return func(s *Service) {
		s.prices = prices
	}
}

func WithRefreshListener(listener ports.RefreshListener) Option {
	return func(s *Service) {
		if listener != nil {
			s.listeners = append(s.listeners, listener)
		}
	}
}

func NewService(repo ports.Repository, swaps ports.SwapExecutor, opts ...Option) *Service {
	s := &Service{repo: repo, swaps: swaps, settleDelay: DefaultSettleDelay}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns the catalog ascending by sort key.
func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return domain.Ordered(items), nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(items, query), nil
}

func (s *Service) MoveUp(ctx context.Context, name string) (ports.MoveResult, error) {
	return s.move(ctx, name, domain.Up)
}

func (s *Service) MoveDown(ctx context.Context, name string) (ports.MoveResult, error) {
	return s.move(ctx, name, domain.Down)
}

func (s *Service) move(ctx context.Context, name string, dir domain.Direction) (ports.MoveResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return ports.MoveResult{Outcome: domain.Busy}, nil
	}
	defer s.busy.Store(false)

	ordered, err := s.List(ctx)
	if err != nil {
		return ports.MoveResult{}, err
	}
	plan, ok, err := domain.PlanSwap(ordered, name, dir)
	if err != nil {
		return ports.MoveResult{}, mapError(err)
	}
	if !ok {
		return ports.MoveResult{Outcome: domain.AtBoundary, Items: ordered}, nil
	}
	if err := s.swaps.Execute(ctx, plan); err != nil {
		return ports.MoveResult{}, mapError(err)
	}
	if err := s.settle(ctx); err != nil {
		return ports.MoveResult{}, err
	}
	refreshed, err := s.List(ctx)
	if err != nil {
		return ports.MoveResult{}, err
	}
	for _, listener := range s.listeners {
		listener(ctx, refreshed)
	}
	return ports.MoveResult{Outcome: domain.Moved, Items: refreshed}, nil
}

func (s *Service) settle(ctx context.Context) error {
	if s.settleDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// AddItem appends a uniquely named item after the current last one.
func (s *Service) AddItem(ctx context.Context, name string) (domain.Item, error) {
	name, err := domain.NormalizeName(name)
	if err != nil {
		return domain.Item{}, mapError(err)
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return domain.Item{}, mapError(err)
	}
	if domain.HasExactName(items, name) {
		return domain.Item{}, mapError(domain.ErrDuplicateName)
	}
	saved, err := s.repo.Insert(ctx, domain.Item{Name: name, Order: domain.NextOrder(items)})
	if err != nil {
		return domain.Item{}, mapError(err)
	}
	return saved, nil
}

// RenameItem renames an item and re-keys its price.
func (s *Service) RenameItem(ctx context.Context, id, newName string) (domain.Item, error) {
	newName, err := domain.NormalizeName(newName)
	if err != nil {
		return domain.Item{}, mapError(err)
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return domain.Item{}, mapError(err)
	}
	item, ok := domain.FindByID(items, id)
	if !ok {
		return domain.Item{}, mapError(domain.ErrItemNotFound)
	}
	if domain.NameTakenByOther(items, id, newName) {
		return domain.Item{}, mapError(domain.ErrDuplicateName)
	}
	if item.Name == newName {
		return item, nil
	}
	if err := s.repo.Rename(ctx, id, newName); err != nil {
		return domain.Item{}, mapError(err)
	}
	oldName := item.Name
	item.Name = newName
	if s.prices != nil {
		if err := s.prices.RenamePrice(ctx, oldName, newName); err != nil {
			return item, mapError(err)
		}
	}
	return item, nil
}

// DeleteItem removes an item and then its price, if one exists.
func (s *Service) DeleteItem(ctx context.Context, id string) (ports.DeleteResult, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return ports.DeleteResult{}, mapError(err)
	}
	item, ok := domain.FindByID(items, id)
	if !ok {
		return ports.DeleteResult{}, mapError(domain.ErrItemNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return ports.DeleteResult{}, mapError(err)
	}
	result := ports.DeleteResult{Item: item}
	if s.prices != nil {
		removed, err := s.prices.DeletePrice(ctx, item.Name)
		if err != nil {
			return result, mapError(err)
		}
		result.PriceRemoved = removed
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
