package usecase

import (
	"context"

	"github.com/google/uuid"

	"brokersim/internal/domain"
	"brokersim/internal/portfolio"
)

// WalletService derives a user's portfolio view from their order
// history. Only EXECUTED orders are folded: PENDING orders are
// unsettled intent and CANCELED orders never settled.
type WalletService struct {
	orderRepo domain.OrderRepository
	assetRepo domain.AssetRepository
}

// NewWalletService creates a new WalletService
func NewWalletService(orderRepo domain.OrderRepository, assetRepo domain.AssetRepository) *WalletService {
	return &WalletService{
		orderRepo: orderRepo,
		assetRepo: assetRepo,
	}
}

// GetWallet returns the user's per-asset positions, recomputed from the
// executed order history on every call.
func (s *WalletService) GetWallet(ctx context.Context, userID uuid.UUID) ([]domain.Position, error) {
	orders, err := s.orderRepo.GetExecutedByUserID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to load executed orders", err)
	}

	assets, err := s.assetsFor(ctx, orders)
	if err != nil {
		return nil, err
	}

	return portfolio.Aggregate(orders, assets), nil
}

// GetSummary returns portfolio totals for the user.
func (s *WalletService) GetSummary(ctx context.Context, userID uuid.UUID) (domain.WalletSummary, error) {
	positions, err := s.GetWallet(ctx, userID)
	if err != nil {
		return domain.WalletSummary{}, err
	}
	return portfolio.Summarize(positions), nil
}

// assetsFor resolves the distinct assets referenced by orders, which
// also supplies the aggregator's current prices.
func (s *WalletService) assetsFor(ctx context.Context, orders []*domain.Order) (map[int64]*domain.Asset, error) {
	assets := make(map[int64]*domain.Asset)
	for _, order := range orders {
		if _, ok := assets[order.AssetID]; ok {
			continue
		}
		asset, err := s.assetRepo.GetByID(ctx, order.AssetID)
		if err != nil {
			return nil, domain.Internal("failed to load asset for wallet", err)
		}
		assets[order.AssetID] = asset
	}
	return assets, nil
}
