package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokersim/internal/domain"
	"brokersim/internal/repository/memory"
	"brokersim/internal/usecase"
)

type walletFixture struct {
	store  *memory.Store
	svc    *usecase.WalletService
	userID uuid.UUID
}

func newWalletFixture(t *testing.T) *walletFixture {
	t.Helper()
	store := memory.NewStore()
	return &walletFixture{
		store:  store,
		svc:    usecase.NewWalletService(store.Orders(), store.Assets()),
		userID: uuid.New(),
	}
}

func (f *walletFixture) addAsset(t *testing.T, symbol string, price float64) *domain.Asset {
	t.Helper()
	asset := &domain.Asset{
		Symbol:       symbol,
		Name:         symbol + " Corp",
		CurrentPrice: price,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, f.store.Assets().Create(context.Background(), asset))
	return asset
}

func (f *walletFixture) addOrder(t *testing.T, assetID int64, orderType, status string, quantity, price float64) {
	t.Helper()
	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    f.userID,
		AssetID:   assetID,
		Type:      orderType,
		Quantity:  quantity,
		Price:     price,
		Status:    status,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.Orders().Create(context.Background(), order))
}

func TestWalletService(t *testing.T) {
	ctx := context.Background()

	t.Run("wallet folds executed orders into positions", func(t *testing.T) {
		f := newWalletFixture(t)
		asset := f.addAsset(t, "TEC11", 70)
		f.addOrder(t, asset.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 10, 50)
		f.addOrder(t, asset.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 5, 80)

		positions, err := f.svc.GetWallet(ctx, f.userID)
		require.NoError(t, err)
		require.Len(t, positions, 1)

		p := positions[0]
		assert.InDelta(t, 15, p.Quantity, 1e-9)
		assert.InDelta(t, 60, p.AvgBuyPrice, 1e-9)
		assert.InDelta(t, 70, p.CurrentPrice, 1e-9)
		assert.InDelta(t, 150, p.Profit, 1e-9)
	})

	t.Run("pending and canceled orders are not settled holdings", func(t *testing.T) {
		f := newWalletFixture(t)
		asset := f.addAsset(t, "TEC11", 70)
		f.addOrder(t, asset.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 10, 50)
		f.addOrder(t, asset.ID, domain.OrderTypeBuy, domain.OrderStatusPending, 100, 50)
		f.addOrder(t, asset.ID, domain.OrderTypeBuy, domain.OrderStatusCanceled, 100, 50)

		positions, err := f.svc.GetWallet(ctx, f.userID)
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.InDelta(t, 10, positions[0].Quantity, 1e-9)
	})

	t.Run("summary derives totals from positions", func(t *testing.T) {
		f := newWalletFixture(t)
		tec := f.addAsset(t, "TEC11", 55)
		fin := f.addAsset(t, "FINV3", 95)
		f.addOrder(t, tec.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 10, 50)
		f.addOrder(t, fin.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 5, 100)

		summary, err := f.svc.GetSummary(ctx, f.userID)
		require.NoError(t, err)
		assert.InDelta(t, 550+475, summary.TotalValue, 1e-9)
		assert.InDelta(t, 50-25, summary.TotalProfit, 1e-9)
		assert.InDelta(t, 25.0/1000.0, summary.Rentability, 1e-9)
		assert.Equal(t, 2, summary.AssetsCount)
	})

	t.Run("closed position keeps the wallet free of division by zero", func(t *testing.T) {
		f := newWalletFixture(t)
		asset := f.addAsset(t, "TEC11", 70)
		f.addOrder(t, asset.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 10, 50)
		f.addOrder(t, asset.ID, domain.OrderTypeSell, domain.OrderStatusExecuted, 10, 60)

		positions, err := f.svc.GetWallet(ctx, f.userID)
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.Zero(t, positions[0].Quantity)
		assert.Zero(t, positions[0].AvgBuyPrice)

		summary, err := f.svc.GetSummary(ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.AssetsCount)
	})

	t.Run("empty history yields an empty wallet and zero summary", func(t *testing.T) {
		f := newWalletFixture(t)

		positions, err := f.svc.GetWallet(ctx, f.userID)
		require.NoError(t, err)
		assert.Empty(t, positions)

		summary, err := f.svc.GetSummary(ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, domain.WalletSummary{}, summary)
	})

	t.Run("deleting an asset leaves the wallet queryable", func(t *testing.T) {
		f := newWalletFixture(t)
		doomed := f.addAsset(t, "TEC11", 70)
		kept := f.addAsset(t, "FINV3", 95)
		f.addOrder(t, doomed.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 10, 50)
		f.addOrder(t, kept.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 5, 90)

		require.NoError(t, f.store.Assets().Delete(ctx, doomed.ID))

		positions, err := f.svc.GetWallet(ctx, f.userID)
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.Equal(t, kept.ID, positions[0].AssetID)
	})

	t.Run("querying twice yields identical results", func(t *testing.T) {
		f := newWalletFixture(t)
		asset := f.addAsset(t, "TEC11", 52)
		f.addOrder(t, asset.ID, domain.OrderTypeBuy, domain.OrderStatusExecuted, 10, 50)
		f.addOrder(t, asset.ID, domain.OrderTypeSell, domain.OrderStatusExecuted, 3, 55)

		first, err := f.svc.GetWallet(ctx, f.userID)
		require.NoError(t, err)
		second, err := f.svc.GetWallet(ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
