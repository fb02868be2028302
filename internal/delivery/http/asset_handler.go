package http

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"brokersim/internal/delivery/http/dto"
	"brokersim/internal/service"
)

// AssetHandler handles asset-related requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Create registers a new asset
// POST /api/assets (ADMIN)
func (h *AssetHandler) Create(c echo.Context) error {
	var req dto.CreateAssetRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	asset, err := h.assetService.Create(ctx, req.Symbol, req.Name, req.Price)
	if err != nil {
		return FailureResponse(c, err)
	}

	return CreatedResponse(c, asset)
}

// List returns active assets
// GET /api/assets
func (h *AssetHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	assets, err := h.assetService.FindAll(ctx)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, assets)
}

// GetByID returns an asset by ID
// GET /api/assets/:id
func (h *AssetHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return BadRequestResponse(c, "Invalid asset ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	asset, err := h.assetService.FindOne(ctx, id)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, asset)
}

// Update applies a partial update to an asset
// PUT /api/assets/:id (ADMIN)
func (h *AssetHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return BadRequestResponse(c, "Invalid asset ID")
	}

	var patch service.AssetPatch
	if err := c.Bind(&patch); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	asset, err := h.assetService.Update(ctx, id, patch)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, asset)
}

// Delete removes an asset
// DELETE /api/assets/:id (ADMIN)
func (h *AssetHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return BadRequestResponse(c, "Invalid asset ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.assetService.Remove(ctx, id); err != nil {
		return FailureResponse(c, err)
	}

	return SuccessMessageResponse(c, "Asset deleted successfully", nil)
}
