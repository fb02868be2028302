package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brokersim/internal/domain"
)

// OrderService manages the order lifecycle: PENDING at creation, then a
// single transition to EXECUTED or CANCELED, both terminal.
type OrderService struct {
	orderRepo domain.OrderRepository
	userRepo  domain.UserRepository
	assetRepo domain.AssetRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	assetRepo domain.AssetRepository,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		assetRepo: assetRepo,
	}
}

// Create validates and persists a new order in PENDING state. The owning
// user and the asset must exist; quantity, price, and type are each
// checked independently.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, assetID int64, orderType string, quantity, price float64) (*domain.Order, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFound("user not found")
	}

	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		return nil, domain.NotFound("asset not found")
	}

	if quantity <= 0 {
		return nil, domain.InvalidArgument("quantity must be greater than zero")
	}
	if price <= 0 {
		return nil, domain.InvalidArgument("price must be greater than zero")
	}
	if !domain.ValidOrderType(orderType) {
		return nil, domain.InvalidArgument("type must be BUY or SELL")
	}

	now := time.Now()
	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    userID,
		AssetID:   assetID,
		Type:      orderType,
		Quantity:  quantity,
		Price:     price,
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, domain.Internal("failed to create order", err)
	}

	return order, nil
}

// GetByID retrieves a single order.
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("order not found")
	}
	return order, nil
}

// FindAll returns every order, newest first.
func (s *OrderService) FindAll(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list orders", err)
	}
	return orders, nil
}

// FindByUser returns a user's orders, newest first. The user must exist.
func (s *OrderService) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFound("user not found")
	}

	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to list orders by user", err)
	}
	return orders, nil
}

// FindByAsset returns orders for an asset, newest first. The asset must exist.
func (s *OrderService) FindByAsset(ctx context.Context, assetID int64) ([]*domain.Order, error) {
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		return nil, domain.NotFound("asset not found")
	}

	orders, err := s.orderRepo.GetByAssetID(ctx, assetID)
	if err != nil {
		return nil, domain.Internal("failed to list orders by asset", err)
	}
	return orders, nil
}

// Update applies a partial patch to a PENDING order. Terminal orders
// reject every change, including attempts to move status back to
// PENDING. Only the order's owner or an ADMIN may update it.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, caller Caller, patch domain.OrderPatch) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("order not found")
	}

	if !caller.CanMutate(order.UserID) {
		return nil, domain.Forbidden("order belongs to another user")
	}

	if order.IsTerminal() {
		return nil, domain.InvalidState("cannot update executed or canceled order")
	}

	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return nil, domain.InvalidArgument("quantity must be greater than zero")
		}
		order.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, domain.InvalidArgument("price must be greater than zero")
		}
		order.Price = *patch.Price
	}
	if patch.Status != nil {
		if !domain.ValidOrderStatus(*patch.Status) {
			return nil, domain.InvalidArgument("status must be PENDING, EXECUTED or CANCELED")
		}
		order.Status = *patch.Status
	}

	order.UpdatedAt = time.Now()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, domain.Internal("failed to update order", err)
	}

	return order, nil
}

// Remove deletes an order regardless of status. Deletion is not a state
// transition, so terminal orders are deletable too. Only the order's
// owner or an ADMIN may remove it.
func (s *OrderService) Remove(ctx context.Context, id uuid.UUID, caller Caller) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return domain.NotFound("order not found")
	}

	if !caller.CanMutate(order.UserID) {
		return domain.Forbidden("order belongs to another user")
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return domain.Internal("failed to delete order", err)
	}

	return nil
}

// Caller identifies who is performing an operation, for ownership checks.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

// CanMutate reports whether the caller may mutate a resource owned by
// ownerID: owners and admins may.
func (c Caller) CanMutate(ownerID uuid.UUID) bool {
	return c.UserID == ownerID || c.Role == domain.RoleAdmin
}
