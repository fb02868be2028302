package domain

// Position is a derived per-asset view of a user's holdings. It is
// recomputed from the order history on every query and never persisted.
type Position struct {
	AssetID      int64   `json:"asset_id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	AvgBuyPrice  float64 `json:"avg_buy_price"`
	CurrentPrice float64 `json:"current_price"`
	Profit       float64 `json:"profit"`
}

// WalletSummary aggregates a user's positions into portfolio totals.
type WalletSummary struct {
	TotalValue  float64 `json:"total_value"`
	TotalProfit float64 `json:"total_profit"`
	Rentability float64 `json:"rentability"`
	AssetsCount int     `json:"assets_count"`
}
