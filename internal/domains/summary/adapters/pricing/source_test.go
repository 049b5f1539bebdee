package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pricingdocstore "github.com/Apurer/bakery-ledger/internal/domains/pricing/adapters/docstore"
	pricingapp "github.com/Apurer/bakery-ledger/internal/domains/pricing/application"
	pricingdomain "github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore/memory"
)

func TestSourceExposesPricingIndex(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	prices := pricingapp.NewService(
		pricingdocstore.NewPriceRepository(store),
		pricingdocstore.NewBeverageRepository(store),
	)
	_, err := prices.CommitEdits(ctx, []pricingdomain.Edit{{ItemName: "Nescafe", Price: decimal.NewFromInt(80)}})
	require.NoError(t, err)

	idx, err := NewSource(prices).PriceIndex(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80).Equal(idx.UnitPrice("Nescafe")))
	assert.True(t, idx.UnitPrice("Milo").IsZero())
}
