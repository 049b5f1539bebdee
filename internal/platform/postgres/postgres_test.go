package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"", "pgx", "PQ", "postgres"} {
		d, err := Dialector(driver, "host=localhost")
		require.NoError(t, err, driver)
		assert.Equal(t, "postgres", d.Name())
	}

	_, err := Dialector("mysql", "host=localhost")
	assert.Error(t, err)
}

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), DriverPgx, "  ")
	assert.Error(t, err)
}

func TestConnectOrFallback_NoDSN(t *testing.T) {
	db, cleanup := ConnectOrFallback(context.Background(), nil, DriverPgx, "")
	assert.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
