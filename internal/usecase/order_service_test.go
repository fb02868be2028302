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

type orderFixture struct {
	store *memory.Store
	svc   *usecase.OrderService
	user  *domain.User
	asset *domain.Asset
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()

	user := &domain.User{
		ID:        uuid.New(),
		Name:      "Alice",
		Email:     "alice@x.com",
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Users().Create(ctx, user))

	asset := &domain.Asset{
		Symbol:       "TEC11",
		Name:         "Tecnologia 11",
		CurrentPrice: 55,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.Assets().Create(ctx, asset))

	return &orderFixture{
		store: store,
		svc:   usecase.NewOrderService(store.Orders(), store.Users(), store.Assets()),
		user:  user,
		asset: asset,
	}
}

func (f *orderFixture) owner() usecase.Caller {
	return usecase.Caller{UserID: f.user.ID, Role: f.user.Role}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a PENDING order", func(t *testing.T) {
		f := newOrderFixture(t)

		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, f.user.ID, order.UserID)
		assert.Equal(t, f.asset.ID, order.AssetID)
		assert.NotEqual(t, uuid.Nil, order.ID)

		stored, err := f.store.Orders().GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, stored.ID)
	})

	t.Run("rejects a missing user", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.Create(ctx, uuid.New(), f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("rejects a missing asset", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.Create(ctx, f.user.ID, 999, domain.OrderTypeBuy, 10, 100)
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("each argument is checked independently", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 0, 100)
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

		_, err = f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, -1, 100)
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

		_, err = f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeSell, 10, 0)
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

		_, err = f.svc.Create(ctx, f.user.ID, f.asset.ID, "HOLD", 10, 100)
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	})
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()

	executed := domain.OrderStatusExecuted
	pending := domain.OrderStatusPending
	price := 120.5
	quantity := 15.0

	t.Run("applies a partial patch to a PENDING order", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)

		updated, err := f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Quantity: &quantity})
		require.NoError(t, err)
		assert.InDelta(t, 15, updated.Quantity, 1e-9)
		assert.InDelta(t, 100, updated.Price, 1e-9) // untouched
		assert.Equal(t, domain.OrderStatusPending, updated.Status)
	})

	t.Run("transitions PENDING to EXECUTED", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)

		updated, err := f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Status: &executed})
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusExecuted, updated.Status)
	})

	t.Run("rejects any change on a terminal order", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)
		_, err = f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Status: &executed})
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Price: &price})
		assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))

		// Re-entering a non-terminal state is rejected too
		_, err = f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Status: &pending})
		assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
	})

	t.Run("rejects invalid patch values", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)

		zero := 0.0
		_, err = f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Quantity: &zero})
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

		bogus := "DONE"
		_, err = f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Status: &bogus})
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	})

	t.Run("rejects an unknown order", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.Update(ctx, uuid.New(), f.owner(), domain.OrderPatch{Price: &price})
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("rejects a caller who does not own the order", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)

		stranger := usecase.Caller{UserID: uuid.New(), Role: domain.RoleUser}
		_, err = f.svc.Update(ctx, order.ID, stranger, domain.OrderPatch{Price: &price})
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})

	t.Run("admins may mutate any order", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)

		admin := usecase.Caller{UserID: uuid.New(), Role: domain.RoleAdmin}
		_, err = f.svc.Update(ctx, order.ID, admin, domain.OrderPatch{Price: &price})
		require.NoError(t, err)
	})
}

func TestOrderService_Remove(t *testing.T) {
	ctx := context.Background()
	executed := domain.OrderStatusExecuted

	t.Run("deletes regardless of status", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)
		_, err = f.svc.Update(ctx, order.ID, f.owner(), domain.OrderPatch{Status: &executed})
		require.NoError(t, err)

		require.NoError(t, f.svc.Remove(ctx, order.ID, f.owner()))

		_, err = f.svc.GetByID(ctx, order.ID)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("rejects an unknown order", func(t *testing.T) {
		f := newOrderFixture(t)
		err := f.svc.Remove(ctx, uuid.New(), f.owner())
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		f := newOrderFixture(t)
		order, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 10, 100)
		require.NoError(t, err)

		stranger := usecase.Caller{UserID: uuid.New(), Role: domain.RoleUser}
		err = f.svc.Remove(ctx, order.ID, stranger)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})
}

func TestOrderService_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("findByUser returns newest first", func(t *testing.T) {
		f := newOrderFixture(t)

		first, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 1, 10)
		require.NoError(t, err)
		second, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeSell, 2, 20)
		require.NoError(t, err)

		orders, err := f.svc.FindByUser(ctx, f.user.ID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)
	})

	t.Run("findByUser rejects a missing user", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.FindByUser(ctx, uuid.New())
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("findByAsset rejects a missing asset", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.FindByAsset(ctx, 42)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("findByAsset returns matching orders", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.Create(ctx, f.user.ID, f.asset.ID, domain.OrderTypeBuy, 1, 10)
		require.NoError(t, err)

		orders, err := f.svc.FindByAsset(ctx, f.asset.ID)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})
}
