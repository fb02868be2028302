package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"brokersim/internal/domain"
)

// PriceTicker stands in for a market data feed: each tick applies a
// bounded random walk to every active asset's current price.
type PriceTicker struct {
	assetRepo domain.AssetRepository
	maxDrift  float64 // max fractional move per tick, e.g. 0.01 for 1%
}

// NewPriceTicker creates a new PriceTicker
func NewPriceTicker(assetRepo domain.AssetRepository, maxDrift float64) *PriceTicker {
	if maxDrift <= 0 {
		maxDrift = 0.01
	}
	return &PriceTicker{
		assetRepo: assetRepo,
		maxDrift:  maxDrift,
	}
}

// Tick drifts every active asset's price once.
func (t *PriceTicker) Tick(ctx context.Context) error {
	assets, err := t.assetRepo.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load assets for price tick: %w", err)
	}

	for _, asset := range assets {
		drift := (rand.Float64()*2 - 1) * t.maxDrift
		newPrice := asset.CurrentPrice * (1 + drift)
		if newPrice <= 0 {
			continue
		}

		asset.CurrentPrice = newPrice
		if err := t.assetRepo.Update(ctx, asset); err != nil {
			log.Printf("ERROR: Failed to update price for %s: %v", asset.Symbol, err)
			continue
		}
	}

	return nil
}
