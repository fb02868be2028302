package dto

// CreateAssetRequest represents the asset creation payload
type CreateAssetRequest struct {
	Symbol string  `json:"symbol" validate:"required"`
	Name   string  `json:"name" validate:"required"`
	Price  float64 `json:"price" validate:"required,gt=0"`
}
