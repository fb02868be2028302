package service

import (
	"context"
	"strings"
	"time"

	"brokersim/internal/domain"
)

// AssetService handles asset CRUD. Symbols are stored uppercase and are
// unique across assets.
type AssetService struct {
	assetRepo domain.AssetRepository
}

// NewAssetService creates a new AssetService
func NewAssetService(assetRepo domain.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// Create registers a new asset.
func (s *AssetService) Create(ctx context.Context, symbol, name string, price float64) (*domain.Asset, error) {
	if symbol == "" {
		return nil, domain.InvalidArgument("symbol is required")
	}
	if price <= 0 {
		return nil, domain.InvalidArgument("price must be greater than zero")
	}

	symbol = strings.ToUpper(symbol)
	if _, err := s.assetRepo.GetBySymbol(ctx, symbol); err == nil {
		return nil, domain.Conflict("asset symbol already exists")
	}

	now := time.Now()
	asset := &domain.Asset{
		Symbol:       symbol,
		Name:         name,
		CurrentPrice: price,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, domain.Internal("failed to create asset", err)
	}

	return asset, nil
}

// FindAll returns active assets, newest first.
func (s *AssetService) FindAll(ctx context.Context) ([]*domain.Asset, error) {
	assets, err := s.assetRepo.GetAllActive(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list assets", err)
	}
	return assets, nil
}

// FindOne returns an asset by ID.
func (s *AssetService) FindOne(ctx context.Context, id int64) (*domain.Asset, error) {
	if id <= 0 {
		return nil, domain.InvalidArgument("id must be a positive number")
	}

	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("asset not found")
	}
	return asset, nil
}

// AssetPatch carries a partial asset update; nil fields are untouched.
type AssetPatch struct {
	Symbol *string  `json:"symbol,omitempty"`
	Name   *string  `json:"name,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Active *bool    `json:"is_active,omitempty"`
}

// Update applies a partial patch to an existing asset. Changing the
// symbol to one held by another asset is a conflict.
func (s *AssetService) Update(ctx context.Context, id int64, patch AssetPatch) (*domain.Asset, error) {
	asset, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Symbol == nil && patch.Name == nil && patch.Price == nil && patch.Active == nil {
		return nil, domain.InvalidArgument("at least one field must be provided for update")
	}

	if patch.Symbol != nil {
		symbol := strings.ToUpper(*patch.Symbol)
		if existing, err := s.assetRepo.GetBySymbol(ctx, symbol); err == nil && existing.ID != id {
			return nil, domain.Conflict("asset symbol already exists")
		}
		asset.Symbol = symbol
	}
	if patch.Name != nil {
		asset.Name = *patch.Name
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, domain.InvalidArgument("price must be greater than zero")
		}
		asset.CurrentPrice = *patch.Price
	}
	if patch.Active != nil {
		asset.IsActive = *patch.Active
	}

	asset.UpdatedAt = time.Now()

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, domain.Internal("failed to update asset", err)
	}

	return asset, nil
}

// Remove deletes an asset by ID.
func (s *AssetService) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	if err := s.assetRepo.Delete(ctx, id); err != nil {
		return domain.Internal("failed to delete asset", err)
	}
	return nil
}
