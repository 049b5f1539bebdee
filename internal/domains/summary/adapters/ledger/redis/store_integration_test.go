//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
)

func TestStoreRoundTripAgainstRedis(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, WithTTL(time.Hour))

	empty, err := store.Load(ctx, "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, domain.CashLedger{}, empty)

	require.NoError(t, store.Save(ctx, "2024-03-09", ledgerFixture()))
	loaded, err := store.Load(ctx, "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, ledgerFixture(), loaded)

	other, err := store.Load(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "Nimal", other.CashierName)
	assert.Empty(t, other.InitialCash)

	ttl, err := client.TTL(ctx, store.DayKey("2024-03-09")).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}
