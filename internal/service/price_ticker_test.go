package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"brokersim/internal/repository/memory"
	"brokersim/internal/service"
)

func TestPriceTicker_Tick(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	assets := service.NewAssetService(store.Assets())

	created, err := assets.Create(ctx, "TEC11", "Tecnologia 11", 100)
	require.NoError(t, err)

	ticker := service.NewPriceTicker(store.Assets(), 0.05)

	for i := 0; i < 20; i++ {
		require.NoError(t, ticker.Tick(ctx))

		asset, err := store.Assets().GetByID(ctx, created.ID)
		require.NoError(t, err)

		// Bounded walk: price stays positive and within the drift band
		// of the previous value.
		require.Greater(t, asset.CurrentPrice, 0.0)
		drift := math.Abs(asset.CurrentPrice-created.CurrentPrice) / created.CurrentPrice
		require.LessOrEqual(t, drift, 0.05+1e-9)

		created = asset
	}
}
