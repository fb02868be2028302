package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"brokersim/internal/delivery/http/dto"
	"brokersim/internal/domain"
	"brokersim/internal/middleware"
	"brokersim/internal/service"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles user registration
// POST /api/users
func (h *UserHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Name, email and password are required")
	}
	if len(req.Password) < 6 {
		return BadRequestResponse(c, "Password must be at least 6 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return FailureResponse(c, err)
	}

	return CreatedResponse(c, dto.NewUserOutput(user))
}

// List returns all users
// GET /api/users (ADMIN)
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.userService.FindAll(ctx)
	if err != nil {
		return FailureResponse(c, err)
	}

	output := make([]*dto.UserOutput, 0, len(users))
	for _, user := range users {
		output = append(output, dto.NewUserOutput(user))
	}

	return SuccessResponse(c, output)
}

// GetMe returns the caller's own profile
// GET /api/users/me
func (h *UserHandler) GetMe(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return FailureResponse(c, domain.Unauthorized("not authenticated"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.FindOne(ctx, identity.UserID)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, dto.NewUserOutput(user))
}

// GetByID returns a user by ID
// GET /api/users/:id (ADMIN)
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.FindOne(ctx, id)
	if err != nil {
		return FailureResponse(c, err)
	}

	return SuccessResponse(c, dto.NewUserOutput(user))
}

// Delete removes a user
// DELETE /api/users/:id (ADMIN)
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.userService.Remove(ctx, id); err != nil {
		return FailureResponse(c, err)
	}

	return SuccessMessageResponse(c, "User deleted successfully", nil)
}
