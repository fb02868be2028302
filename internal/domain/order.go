package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a buy/sell order placed by a user
type Order struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	AssetID   int64     `json:"asset_id"`
	Type      string    `json:"type"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"` // price per unit at order time
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderType constants
const (
	OrderTypeBuy  = "BUY"
	OrderTypeSell = "SELL"
)

// OrderStatus constants
const (
	OrderStatusPending  = "PENDING"
	OrderStatusExecuted = "EXECUTED"
	OrderStatusCanceled = "CANCELED"
)

// IsTerminal reports whether the order reached a final state. Terminal
// orders are immutable, including their status field.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusExecuted || o.Status == OrderStatusCanceled
}

// ValidOrderType reports whether t is BUY or SELL.
func ValidOrderType(t string) bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}

// ValidOrderStatus reports whether s is a known lifecycle state.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusExecuted || s == OrderStatusCanceled
}

// OrderPatch carries a partial update; nil fields are left untouched.
type OrderPatch struct {
	Status   *string  `json:"status,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}
