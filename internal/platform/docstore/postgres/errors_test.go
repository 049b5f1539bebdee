package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

func TestTranslate(t *testing.T) {
	plain := errors.New("boom")

	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: docstore.ErrNotFound},
		{name: "pq permission", err: &pq.Error{Code: "42501"}, want: docstore.ErrPermissionDenied},
		{name: "pq connection", err: &pq.Error{Code: "08006"}, want: docstore.ErrUnavailable},
		{name: "pgx permission", err: &pgconn.PgError{Code: "42501"}, want: docstore.ErrPermissionDenied},
		{name: "pgx admin shutdown", err: fmt.Errorf("query: %w", &pgconn.PgError{Code: "57P01"}), want: docstore.ErrUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: docstore.ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	t.Run("unknown passes through", func(t *testing.T) {
		got := translate(plain)
		assert.Same(t, plain, got)
	})

	t.Run("unique violation passes through", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		got := translate(err)
		assert.NotErrorIs(t, got, docstore.ErrUnavailable)
		assert.NotErrorIs(t, got, docstore.ErrPermissionDenied)
	})
}

func TestStore_NotConfigured(t *testing.T) {
	store := NewStore(nil)
	_, err := store.QueryAll(context.Background(), docstore.CollectionCatalogItems)
	assert.Error(t, err)
}
