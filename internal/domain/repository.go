package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email (case-sensitive as stored)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetAll retrieves all users ordered by creation time
	GetAll(ctx context.Context) ([]*User, error)

	// Delete removes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssetRepository defines the interface for asset data operations
type AssetRepository interface {
	// Create creates a new asset and assigns its ID
	Create(ctx context.Context, asset *Asset) error

	// GetByID retrieves an asset by ID
	GetByID(ctx context.Context, id int64) (*Asset, error)

	// GetBySymbol retrieves an asset by its unique symbol
	GetBySymbol(ctx context.Context, symbol string) (*Asset, error)

	// GetAllActive retrieves active assets, newest first
	GetAllActive(ctx context.Context) ([]*Asset, error)

	// Update persists changes to an existing asset
	Update(ctx context.Context, asset *Asset) error

	// Delete removes an asset by ID
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists a new order
	Create(ctx context.Context, order *Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// GetAll retrieves all orders, newest first
	GetAll(ctx context.Context) ([]*Order, error)

	// GetByUserID retrieves a user's orders, newest first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Order, error)

	// GetByAssetID retrieves orders for an asset, newest first
	GetByAssetID(ctx context.Context, assetID int64) ([]*Order, error)

	// GetExecutedByUserID retrieves a user's EXECUTED orders in creation order.
	// The portfolio fold is path-dependent, so ordering must be stable.
	GetExecutedByUserID(ctx context.Context, userID uuid.UUID) ([]*Order, error)

	// Update persists changes to an existing order
	Update(ctx context.Context, order *Order) error

	// Delete removes an order by ID regardless of status
	Delete(ctx context.Context, id uuid.UUID) error
}
