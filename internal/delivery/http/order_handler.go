package http

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"brokersim/internal/delivery/http/dto"
	"brokersim/internal/domain"
	"brokersim/internal/middleware"
	"brokersim/internal/usecase"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	orderService *usecase.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *usecase.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create places a new order for the authenticated user
// POST /api/orders
func (h *OrderHandler) Create(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return FailureResponse(c, domain.Unauthorized("not authenticated"))
	}

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, err := h.orderService.Create(ctx, identity.UserID, req.AssetID, req.Type, req.Quantity, req.Price)
	if err != nil {
		return FailureResponse(c, err)
	}

	return CreatedResponse(c, order)
}

// List returns orders, optionally filtered by user or asset
// GET /api/orders?userId=&assetId=
func (h *OrderHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if userIDStr := c.QueryParam("userId"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return BadRequestResponse(c, "Invalid userId filter")
		}

		orders, err := h.orderService.FindByUser(ctx, userID)
		if err != nil {
			return FailureResponse(c, err)
		}
		return SuccessResponse(c, orders)
	}

	if assetIDStr := c.QueryParam("assetId"); assetIDStr != "" {
		assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
		if err != nil {
			return BadRequestResponse(c, "Invalid assetId filter")
		}

		orders, err := h.orderService.FindByAsset(ctx, assetID)
		if err != nil {
			return FailureResponse(c, err)
		}
		return SuccessResponse(c, orders)
	}

	orders, err := h.orderService.FindAll(ctx)
	if err != nil {
		return FailureResponse(c, err)
	}
	return SuccessResponse(c, orders)
}

// GetByID returns a single order
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid order ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, order)
}

// Update applies a partial patch to a PENDING order
// PUT /api/orders/:id
func (h *OrderHandler) Update(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return FailureResponse(c, domain.Unauthorized("not authenticated"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid order ID")
	}

	var patch domain.OrderPatch
	if err := c.Bind(&patch); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	caller := usecase.Caller{UserID: identity.UserID, Role: identity.Role}
	order, err := h.orderService.Update(ctx, id, caller, patch)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, order)
}

// Delete removes an order regardless of status
// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return FailureResponse(c, domain.Unauthorized("not authenticated"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid order ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	caller := usecase.Caller{UserID: identity.UserID, Role: identity.Role}
	if err := h.orderService.Remove(ctx, id, caller); err != nil {
		return FailureResponse(c, err)
	}

	return SuccessMessageResponse(c, "Order removed successfully", nil)
}
