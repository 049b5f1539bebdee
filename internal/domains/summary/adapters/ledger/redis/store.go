package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

var _ ports.LedgerStore = (*Store)(nil)

const defaultPrefix = "bakery"

const (
	fieldInitialCash = "initialCash"
	fieldFinalCash   = "finalCash"
	fieldTotalSales  = "totalSales"
	fieldCashOut     = "cashOut"
	fieldNotes       = "notes"
	fieldUpdatedAt   = "updatedAt"
)

// Store keeps one hash per day under <prefix>:ledger:<date> and the cashier name
// under <prefix>:ledger:cashier.
type Store struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL expires day hashes after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

func NewStore(client goredis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) DayKey(date string) string {
	return fmt.Sprintf("%s:ledger:%s", s.prefix, date)
}

func (s *Store) CashierKey() string {
	return s.prefix + ":ledger:cashier"
}

func (s *Store) Load(ctx context.Context, date string) (domain.CashLedger, error) {
	if s == nil || s.client == nil {
		return domain.CashLedger{}, errors.New("redis ledger store not configured")
	}
	var (
		hash    *goredis.MapStringStringCmd
		cashier *goredis.StringCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		hash = pipe.HGetAll(ctx, s.DayKey(date))
		cashier = pipe.Get(ctx, s.CashierKey())
		return nil
	})
	if err != nil && !errors.Is(err, goredis.Nil) {
		return domain.CashLedger{}, translate(err)
	}

	values := hash.Val()
	ledger := domain.CashLedger{
		CashierName: cashier.Val(),
		InitialCash: values[fieldInitialCash],
		FinalCash:   values[fieldFinalCash],
		TotalSales:  values[fieldTotalSales],
		CashOut:     values[fieldCashOut],
		Notes:       values[fieldNotes],
	}
	if raw := values[fieldUpdatedAt]; raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			ledger.UpdatedAt = ts
		}
	}
	return ledger, nil
}

func (s *Store) Save(ctx context.Context, date string, ledger domain.CashLedger) error {
	if s == nil || s.client == nil {
		return errors.New("redis ledger store not configured")
	}
	fields := map[string]any{
		fieldInitialCash: ledger.InitialCash,
		fieldFinalCash:   ledger.FinalCash,
		fieldTotalSales:  ledger.TotalSales,
		fieldCashOut:     ledger.CashOut,
		fieldNotes:       ledger.Notes,
	}
	if !ledger.UpdatedAt.IsZero() {
		fields[fieldUpdatedAt] = ledger.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	dayKey := s.DayKey(date)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, dayKey, fields)
		pipe.Set(ctx, s.CashierKey(), ledger.CashierName, 0)
		if s.ttl > 0 {
			pipe.Expire(ctx, dayKey, s.ttl)
		}
		return nil
	})
	return translate(err)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var redisErr goredis.Error
	if errors.As(err, &redisErr) {
		msg := redisErr.Error()
		if strings.HasPrefix(msg, "NOPERM") || strings.HasPrefix(msg, "NOAUTH") || strings.HasPrefix(msg, "WRONGPASS") {
			return fmt.Errorf("%w: %w", docstore.ErrPermissionDenied, err)
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, goredis.ErrClosed) {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	return err
}
