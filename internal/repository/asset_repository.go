package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"brokersim/internal/domain"
)

// AssetRepositoryImpl implements the AssetRepository interface
type AssetRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *pgxpool.Pool) domain.AssetRepository {
	return &AssetRepositoryImpl{db: db}
}

// Create creates a new asset and assigns the generated ID
func (r *AssetRepositoryImpl) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (
			symbol, name, current_price, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		asset.Symbol,
		asset.Name,
		asset.CurrentPrice,
		asset.IsActive,
		asset.CreatedAt,
		asset.UpdatedAt,
	).Scan(&asset.ID)

	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by ID
func (r *AssetRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	query := `
		SELECT id, symbol, name, current_price, is_active, created_at, updated_at
		FROM assets
		WHERE id = $1
	`

	asset := &domain.Asset{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Symbol,
		&asset.Name,
		&asset.CurrentPrice,
		&asset.IsActive,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	return asset, nil
}

// GetBySymbol retrieves an asset by its unique symbol
func (r *AssetRepositoryImpl) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	query := `
		SELECT id, symbol, name, current_price, is_active, created_at, updated_at
		FROM assets
		WHERE symbol = $1
	`

	asset := &domain.Asset{}
	err := r.db.QueryRow(ctx, query, symbol).Scan(
		&asset.ID,
		&asset.Symbol,
		&asset.Name,
		&asset.CurrentPrice,
		&asset.IsActive,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get asset by symbol: %w", err)
	}

	return asset, nil
}

// GetAllActive retrieves active assets, newest first
func (r *AssetRepositoryImpl) GetAllActive(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT id, symbol, name, current_price, is_active, created_at, updated_at
		FROM assets
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset := &domain.Asset{}
		err := rows.Scan(
			&asset.ID,
			&asset.Symbol,
			&asset.Name,
			&asset.CurrentPrice,
			&asset.IsActive,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// Update persists changes to an existing asset
func (r *AssetRepositoryImpl) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET symbol = $1, name = $2, current_price = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		asset.Symbol,
		asset.Name,
		asset.CurrentPrice,
		asset.IsActive,
		asset.UpdatedAt,
		asset.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("asset %d not found", asset.ID)
	}

	return nil
}

// Delete removes an asset by ID
func (r *AssetRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM assets WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("asset %d not found", id)
	}

	return nil
}
