package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"brokersim/internal/auth"
	"brokersim/internal/delivery/http/dto"
	"brokersim/internal/domain"
	"brokersim/internal/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	token, user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return FailureResponse(c, err)
	}

	// The token travels in the response body and comes back in the
	// Authorization header; no cookie transport.
	return SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User:  dto.NewUserOutput(user),
	})
}

// Profile returns the authenticated identity decoded from the token
// GET /api/auth/profile
func (h *AuthHandler) Profile(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return FailureResponse(c, domain.Unauthorized("not authenticated"))
	}

	return SuccessResponse(c, map[string]interface{}{
		"id":    identity.UserID.String(),
		"email": identity.Email,
		"role":  identity.Role,
	})
}
