package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokersim/internal/domain"
	"brokersim/internal/repository/memory"
	"brokersim/internal/service"
)

func TestAssetService(t *testing.T) {
	ctx := context.Background()

	newSvc := func() *service.AssetService {
		return service.NewAssetService(memory.NewStore().Assets())
	}

	t.Run("create stores the symbol uppercase", func(t *testing.T) {
		svc := newSvc()

		asset, err := svc.Create(ctx, "tec11", "Tecnologia 11", 55)
		require.NoError(t, err)
		assert.Equal(t, "TEC11", asset.Symbol)
		assert.True(t, asset.IsActive)
		assert.NotZero(t, asset.ID)
	})

	t.Run("duplicate symbol is a conflict", func(t *testing.T) {
		svc := newSvc()

		_, err := svc.Create(ctx, "TEC11", "Tecnologia 11", 55)
		require.NoError(t, err)

		_, err = svc.Create(ctx, "tec11", "Other", 10)
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("create validates symbol and price", func(t *testing.T) {
		svc := newSvc()

		_, err := svc.Create(ctx, "", "No symbol", 10)
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

		_, err = svc.Create(ctx, "TEC11", "Tecnologia", 0)
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	})

	t.Run("update applies a partial patch", func(t *testing.T) {
		svc := newSvc()
		asset, err := svc.Create(ctx, "TEC11", "Tecnologia 11", 55)
		require.NoError(t, err)

		price := 60.0
		updated, err := svc.Update(ctx, asset.ID, service.AssetPatch{Price: &price})
		require.NoError(t, err)
		assert.InDelta(t, 60, updated.CurrentPrice, 1e-9)
		assert.Equal(t, "TEC11", updated.Symbol)
	})

	t.Run("update rejects an empty patch", func(t *testing.T) {
		svc := newSvc()
		asset, err := svc.Create(ctx, "TEC11", "Tecnologia 11", 55)
		require.NoError(t, err)

		_, err = svc.Update(ctx, asset.ID, service.AssetPatch{})
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	})

	t.Run("update rejects a symbol held by another asset", func(t *testing.T) {
		svc := newSvc()
		_, err := svc.Create(ctx, "TEC11", "Tecnologia 11", 55)
		require.NoError(t, err)
		other, err := svc.Create(ctx, "FINV3", "Financas V3", 95)
		require.NoError(t, err)

		symbol := "tec11"
		_, err = svc.Update(ctx, other.ID, service.AssetPatch{Symbol: &symbol})
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("findOne validates the id and reports absence", func(t *testing.T) {
		svc := newSvc()

		_, err := svc.FindOne(ctx, 0)
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

		_, err = svc.FindOne(ctx, 99)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("remove deletes and reports absence", func(t *testing.T) {
		svc := newSvc()
		asset, err := svc.Create(ctx, "TEC11", "Tecnologia 11", 55)
		require.NoError(t, err)

		require.NoError(t, svc.Remove(ctx, asset.ID))
		assert.Equal(t, domain.KindNotFound, domain.KindOf(svc.Remove(ctx, asset.ID)))
	})
}
