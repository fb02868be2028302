package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"brokersim/internal/auth"
	"brokersim/internal/domain"
	custommiddleware "brokersim/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	TokenCodec    *auth.TokenCodec
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	AssetHandler  *AssetHandler
	OrderHandler  *OrderHandler
	WalletHandler *WalletHandler
	Pinger        interface{ Ping(context.Context) error }
}

// SetupRoutes configures all HTTP routes. Every route carries an
// explicit access policy; the guard middleware runs its two gates
// before any handler executes.
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(e)

	e.Use(echomiddleware.LoggerWithConfig(echomiddleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())

	public := custommiddleware.Policy{Public: true}
	authenticated := custommiddleware.Policy{}
	adminOnly := custommiddleware.Policy{Roles: []string{domain.RoleAdmin}}

	guard := func(policy custommiddleware.Policy) echo.MiddlewareFunc {
		return custommiddleware.Guard(config.TokenCodec, policy)
	}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		dbStatus := "healthy"
		if config.Pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := config.Pinger.Ping(ctx); err != nil {
				dbStatus = "unhealthy"
			}
		}
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "brokersim-api",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}, guard(public))

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", config.AuthHandler.Login, guard(public))
		authGroup.GET("/profile", config.AuthHandler.Profile, guard(authenticated))
	}

	// User routes
	users := api.Group("/users")
	{
		users.POST("", config.UserHandler.Register, guard(public))
		users.GET("", config.UserHandler.List, guard(adminOnly))
		users.GET("/me", config.UserHandler.GetMe, guard(authenticated))
		users.GET("/:id", config.UserHandler.GetByID, guard(adminOnly))
		users.DELETE("/:id", config.UserHandler.Delete, guard(adminOnly))
	}

	// Asset routes
	assets := api.Group("/assets")
	{
		assets.POST("", config.AssetHandler.Create, guard(adminOnly))
		assets.GET("", config.AssetHandler.List, guard(authenticated))
		assets.GET("/:id", config.AssetHandler.GetByID, guard(authenticated))
		assets.PUT("/:id", config.AssetHandler.Update, guard(adminOnly))
		assets.DELETE("/:id", config.AssetHandler.Delete, guard(adminOnly))
	}

	// Order routes
	orders := api.Group("/orders", guard(authenticated))
	{
		orders.POST("", config.OrderHandler.Create)
		orders.GET("", config.OrderHandler.List)
		orders.GET("/:id", config.OrderHandler.GetByID)
		orders.PUT("/:id", config.OrderHandler.Update)
		orders.DELETE("/:id", config.OrderHandler.Delete)
	}

	// Wallet routes
	wallet := api.Group("/wallet", guard(authenticated))
	{
		wallet.GET("", config.WalletHandler.GetWallet)
		wallet.GET("/summary", config.WalletHandler.GetSummary)
	}
}
