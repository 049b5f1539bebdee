package memory

import (
	"context"
	"sync"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
)

var _ ports.LedgerStore = (*Store)(nil)

// Store keeps ledgers in process memory.
type Store struct {
	mu      sync.RWMutex
	cashier string
	days    map[string]domain.CashLedger
}

func NewStore() *Store {
	return &Store{days: map[string]domain.CashLedger{}}
}

func (s *Store) Load(ctx context.Context, date string) (domain.CashLedger, error) {
	if err := ctx.Err(); err != nil {
		return domain.CashLedger{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ledger := s.days[date]
	ledger.CashierName = s.cashier
	return ledger, nil
}

func (s *Store) Save(ctx context.Context, date string, ledger domain.CashLedger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashier = ledger.CashierName
	ledger.CashierName = ""
	s.days[date] = ledger
	return nil
}
