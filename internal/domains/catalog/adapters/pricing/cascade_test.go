package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdocstore "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/docstore"
	catalogworkflows "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/workflows"
	catalogapp "github.com/Apurer/bakery-ledger/internal/domains/catalog/application"
	pricingdocstore "github.com/Apurer/bakery-ledger/internal/domains/pricing/adapters/docstore"
	pricingapp "github.com/Apurer/bakery-ledger/internal/domains/pricing/application"
	pricingdomain "github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore/memory"
)

func TestCascade_DeleteItemRemovesItsPrice(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	prices := pricingapp.NewService(pricingdocstore.NewPriceRepository(store), pricingdocstore.NewBeverageRepository(store))
	items := catalogdocstore.NewRepository(store)
	catalog := catalogapp.NewService(items, catalogworkflows.NewInlineSwapExecutor(items),
		catalogapp.WithPriceCascade(NewCascade(prices)))

	bun, err := catalog.AddItem(ctx, "Bun")
	require.NoError(t, err)
	roll, err := catalog.AddItem(ctx, "Roll")
	require.NoError(t, err)
	_, err = prices.CommitEdits(ctx, []pricingdomain.Edit{{ItemName: "Bun", Price: decimal.RequireFromString("40")}})
	require.NoError(t, err)

	result, err := catalog.DeleteItem(ctx, bun.ID)
	require.NoError(t, err)
	assert.True(t, result.PriceRemoved)
	lookup, err := prices.GetPrice(ctx, "Bun")
	require.NoError(t, err)
	assert.False(t, lookup.Found())

	result, err = catalog.DeleteItem(ctx, roll.ID)
	require.NoError(t, err)
	assert.False(t, result.PriceRemoved)

	remaining, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCascade_RenameItemReKeysPrice(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	prices := pricingapp.NewService(pricingdocstore.NewPriceRepository(store), pricingdocstore.NewBeverageRepository(store))
	items := catalogdocstore.NewRepository(store)
	catalog := catalogapp.NewService(items, catalogworkflows.NewInlineSwapExecutor(items),
		catalogapp.WithPriceCascade(NewCascade(prices)))

	bun, err := catalog.AddItem(ctx, "Bun")
	require.NoError(t, err)
	_, err = prices.CommitEdits(ctx, []pricingdomain.Edit{{ItemName: "Bun", Price: decimal.RequireFromString("40")}})
	require.NoError(t, err)

	_, err = catalog.RenameItem(ctx, bun.ID, "Seeni Bun")
	require.NoError(t, err)

	lookup, err := prices.GetPrice(ctx, "Seeni Bun")
	require.NoError(t, err)
	require.True(t, lookup.Found())
	assert.Equal(t, "40", lookup.Price.Decimal.String())
}
