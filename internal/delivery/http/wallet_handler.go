package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"brokersim/internal/domain"
	"brokersim/internal/middleware"
	"brokersim/internal/usecase"
)

// WalletHandler handles portfolio view requests
type WalletHandler struct {
	walletService *usecase.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *usecase.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet returns the caller's per-asset positions
// GET /api/wallet
func (h *WalletHandler) GetWallet(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return FailureResponse(c, domain.Unauthorized("not authenticated"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	positions, err := h.walletService.GetWallet(ctx, identity.UserID)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, positions)
}

// GetSummary returns the caller's portfolio totals
// GET /api/wallet/summary
func (h *WalletHandler) GetSummary(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return FailureResponse(c, domain.Unauthorized("not authenticated"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summary, err := h.walletService.GetSummary(ctx, identity.UserID)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, summary)
}
