package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/pricing/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

// Service orchestrates pricing use cases. Staged edits live in the instance until committed.
type Service struct {
	prices    ports.PriceRepository
	beverages ports.BeverageRepository
	now       func() time.Time

	mu      sync.Mutex
	pending map[domain.Scope]map[string]decimal.Decimal
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(prices ports.PriceRepository, beverages ports.BeverageRepository, opts ...Option) *Service {
	s := &Service{
		prices:    prices,
		beverages: beverages,
		now:       time.Now,
		pending:   map[domain.Scope]map[string]decimal.Decimal{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) PriceIndex(ctx context.Context) (domain.Index, error) {
	records, err := s.prices.List(ctx)
	if err != nil {
		return domain.Index{}, mapError(err)
	}
	return domain.NewIndex(records), nil
}

// GetPrice looks a price up by exact name.
func (s *Service) GetPrice(ctx context.Context, name string) (domain.Lookup, error) {
	idx, err := s.PriceIndex(ctx)
	if err != nil {
		return domain.Lookup{}, err
	}
	return idx.Lookup(name), nil
}

// SetPendingEdit stages or clears an edit without writing to the store.
func (s *Service) SetPendingEdit(_ context.Context, scope domain.Scope, name, raw string) error {
	if name == "" {
		return mapError(domain.ErrItemNameMissing)
	}
	price, drop, err := domain.ParseEdit(scope, raw)
	if err != nil {
		return mapError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	edits, ok := s.pending[scope]
	if !ok {
		edits = map[string]decimal.Decimal{}
		s.pending[scope] = edits
	}
	if drop {
		delete(edits, name)
		return nil
	}
	edits[name] = price
	return nil
}

// PendingEdits returns the staged edits of a scope ordered by name.
func (s *Service) PendingEdits(_ context.Context, scope domain.Scope) []domain.Edit {
	s.mu.Lock()
	defer s.mu.Unlock()
	edits := make([]domain.Edit, 0, len(s.pending[scope]))
	for name, price := range s.pending[scope] {
		edits = append(edits, domain.Edit{ItemName: name, Price: price})
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].ItemName < edits[j].ItemName })
	return edits
}

// CommitEdits writes every edit concurrently and waits for all of them. An invalid batch is
// rejected before the store is touched. Nothing is rolled back once writing starts: the result
// lists each write and the error reports the first failure.
func (s *Service) CommitEdits(ctx context.Context, edits []domain.Edit) (domain.CommitResult, error) {
	if err := domain.ValidateEdits(edits); err != nil {
		return domain.CommitResult{}, mapError(err)
	}
	idx, err := s.PriceIndex(ctx)
	if err != nil {
		return domain.CommitResult{}, err
	}
	result := domain.CommitResult{Attempted: len(edits), Items: make([]domain.ItemResult, len(edits))}
	var g errgroup.Group
	for i, edit := range edits {
		g.Go(func() error {
			item := s.write(ctx, idx, edit)
			result.Items[i] = item
			return item.Err
		})
	}
	err = g.Wait()
	for _, item := range result.Items {
		if item.Err == nil {
			result.Saved++
		}
	}
	if err != nil {
		return result, fmt.Errorf("saved %d of %d price changes: %w", result.Saved, result.Attempted, err)
	}
	return result, nil
}

func (s *Service) write(ctx context.Context, idx domain.Index, edit domain.Edit) domain.ItemResult {
	item := domain.ItemResult{ItemName: edit.ItemName}
	if hit := idx.Lookup(edit.ItemName); hit.Found() {
		item.RecordID = hit.RecordID
		item.Err = mapError(s.prices.UpdatePrice(ctx, hit.RecordID, edit.Price))
		return item
	}
	saved, err := s.prices.Insert(ctx, domain.PriceRecord{ItemName: edit.ItemName, Price: edit.Price})
	item.Created = true
	item.RecordID = saved.ID
	item.Err = mapError(err)
	return item
}

// CommitPending commits the staged edits of a scope. They are cleared only when every write succeeds.
func (s *Service) CommitPending(ctx context.Context, scope domain.Scope) (domain.CommitResult, error) {
	edits := s.PendingEdits(ctx, scope)
	result, err := s.CommitEdits(ctx, edits)
	if err != nil {
		return result, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, edit := range edits {
		if staged, ok := s.pending[scope][edit.ItemName]; ok && staged.Equal(edit.Price) {
			delete(s.pending[scope], edit.ItemName)
		}
	}
	return result, nil
}

// DeletePrice removes the record for name. It reports false when there was none.
func (s *Service) DeletePrice(ctx context.Context, name string) (bool, error) {
	idx, err := s.PriceIndex(ctx)
	if err != nil {
		return false, err
	}
	hit := idx.Lookup(name)
	if !hit.Found() {
		return false, nil
	}
	if err := s.prices.Delete(ctx, hit.RecordID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, mapError(err)
	}
	return true, nil
}

// RenamePrice re-keys the record for oldName along with any staged bakery edit.
func (s *Service) RenamePrice(ctx context.Context, oldName, newName string) error {
	if newName == "" {
		return mapError(domain.ErrItemNameMissing)
	}
	idx, err := s.PriceIndex(ctx)
	if err != nil {
		return err
	}
	if hit := idx.Lookup(oldName); hit.Found() {
		if err := s.prices.Rename(ctx, hit.RecordID, newName); err != nil {
			return mapError(err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if staged, ok := s.pending[domain.ScopeBakery][oldName]; ok {
		delete(s.pending[domain.ScopeBakery], oldName)
		s.pending[domain.ScopeBakery][newName] = staged
	}
	return nil
}

// AddBeverage adds a beverage dated today with zero counts.
func (s *Service) AddBeverage(ctx context.Context, name string) (domain.BeverageItem, error) {
	item, err := domain.NewBeverageItem(name, s.now())
	if err != nil {
		return domain.BeverageItem{}, mapError(err)
	}
	existing, err := s.beverages.List(ctx)
	if err != nil {
		return domain.BeverageItem{}, mapError(err)
	}
	if domain.HasBeverageNamed(existing, item.ItemName) {
		return domain.BeverageItem{}, mapError(fmt.Errorf("%w: %s", ErrDuplicateBeverage, item.ItemName))
	}
	saved, err := s.beverages.Insert(ctx, item)
	if err != nil {
		return domain.BeverageItem{}, mapError(err)
	}
	return saved, nil
}

// ListBeverages returns one item per name. Before any beverage is added the defaults are listed unsaved.
func (s *Service) ListBeverages(ctx context.Context) ([]domain.BeverageItem, error) {
	items, err := s.beverages.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if len(items) == 0 {
		today := s.now().Format(domain.DateLayout)
		defaults := make([]domain.BeverageItem, 0, len(domain.DefaultBeverageNames))
		for _, name := range domain.DefaultBeverageNames {
			defaults = append(defaults, domain.BeverageItem{ItemName: name, Date: today})
		}
		return defaults, nil
	}
	return domain.UniqueBeverages(items), nil
}

// Stats counts how many of the given bakery items and of the beverages have a price.
func (s *Service) Stats(ctx context.Context, bakeryNames []string) (domain.PriceStats, error) {
	idx, err := s.PriceIndex(ctx)
	if err != nil {
		return domain.PriceStats{}, err
	}
	beverages, err := s.ListBeverages(ctx)
	if err != nil {
		return domain.PriceStats{}, err
	}
	var stats domain.PriceStats
	for _, name := range bakeryNames {
		if idx.Has(name) {
			stats.BakeryPriced++
		}
	}
	for _, beverage := range beverages {
		if idx.Has(beverage.ItemName) {
			stats.BeveragePriced++
		}
	}
	return stats, nil
}

var _ ports.Service = (*Service)(nil)
