package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokersim/internal/domain"
	"brokersim/internal/repository/memory"
	"brokersim/internal/service"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("register creates a USER with a hashed password", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewUserService(store.Users())

		user, err := svc.Register(ctx, "Alice", "alice@x.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewUserService(store.Users())

		_, err := svc.Register(ctx, "Alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Other", "alice@x.com", "secret2")
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("findOne and remove report absence", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewUserService(store.Users())

		_, err := svc.FindOne(ctx, uuid.New())
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

		err = svc.Remove(ctx, uuid.New())
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("remove deletes an existing user", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewUserService(store.Users())

		user, err := svc.Register(ctx, "Alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		require.NoError(t, svc.Remove(ctx, user.ID))

		users, err := svc.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
