// Package portfolio folds an order history into per-asset positions and
// portfolio totals. Aggregation is a pure function of its inputs: the
// same orders and prices always produce the same positions and summary.
package portfolio

import (
	"brokersim/internal/domain"
)

type running struct {
	quantity float64
	cost     float64 // signed running cost basis
}

// Aggregate folds orders into one position per asset. Orders must be
// supplied in creation order; the fold is path-dependent. Each order's
// asset must be present in assets, which also supplies the current
// price. Assets missing from the map are skipped.
func Aggregate(orders []*domain.Order, assets map[int64]*domain.Asset) []domain.Position {
	grouped := make(map[int64]*running)
	var sequence []int64 // first-seen order of assets, for deterministic output

	for _, order := range orders {
		if _, ok := assets[order.AssetID]; !ok {
			continue
		}

		entry, ok := grouped[order.AssetID]
		if !ok {
			entry = &running{}
			grouped[order.AssetID] = entry
			sequence = append(sequence, order.AssetID)
		}

		sign := 1.0
		if order.Type == domain.OrderTypeSell {
			sign = -1.0
		}

		entry.quantity += order.Quantity * sign
		entry.cost += order.Quantity * order.Price * sign
	}

	positions := make([]domain.Position, 0, len(sequence))
	for _, assetID := range sequence {
		entry := grouped[assetID]
		asset := assets[assetID]

		// A fully closed position has quantity 0; the naive cost/quantity
		// formula would divide by zero there.
		avgCost := 0.0
		if entry.quantity != 0 {
			avgCost = entry.cost / entry.quantity
		}

		positions = append(positions, domain.Position{
			AssetID:      assetID,
			Symbol:       asset.Symbol,
			Name:         asset.Name,
			Quantity:     entry.quantity,
			AvgBuyPrice:  avgCost,
			CurrentPrice: asset.CurrentPrice,
			Profit:       (asset.CurrentPrice - avgCost) * entry.quantity,
		})
	}

	return positions
}

// Summarize derives portfolio totals from aggregated positions.
// Rentability is profit over cost basis (value minus profit); the
// divisor is substituted by 1 when it would be zero. AssetsCount counts
// only positions still holding a non-zero quantity.
func Summarize(positions []domain.Position) domain.WalletSummary {
	var totalValue, totalProfit float64
	openCount := 0

	for _, p := range positions {
		totalValue += p.CurrentPrice * p.Quantity
		totalProfit += p.Profit
		if p.Quantity != 0 {
			openCount++
		}
	}

	divisor := totalValue - totalProfit
	if divisor == 0 {
		divisor = 1
	}

	return domain.WalletSummary{
		TotalValue:  totalValue,
		TotalProfit: totalProfit,
		Rentability: totalProfit / divisor,
		AssetsCount: openCount,
	}
}
