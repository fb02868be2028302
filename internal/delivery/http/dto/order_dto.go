package dto

// CreateOrderRequest represents the order creation payload. The owner
// is the authenticated caller, never a body field.
type CreateOrderRequest struct {
	AssetID  int64   `json:"asset_id" validate:"required"`
	Type     string  `json:"type" validate:"required,oneof=BUY SELL"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}
