package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"brokersim/configs"
	"brokersim/internal/auth"
	"brokersim/internal/database"
	delivery "brokersim/internal/delivery/http"
	"brokersim/internal/domain"
	"brokersim/internal/infra"
	"brokersim/internal/repository"
	"brokersim/internal/service"
	"brokersim/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Bootstrap admin account so role-gated routes are reachable on a
	// fresh database; further role changes are administrative actions.
	ensureAdminUser(ctx, userRepo)

	// Initialize auth components
	tokenCodec := auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := auth.NewService(userRepo, tokenCodec)

	// Initialize services
	userService := service.NewUserService(userRepo)
	assetService := service.NewAssetService(assetRepo)
	orderService := usecase.NewOrderService(orderRepo, userRepo, assetRepo)
	walletService := usecase.NewWalletService(orderRepo, assetRepo)

	// Simulated market feed: drift active asset prices on a schedule
	priceTicker := service.NewPriceTicker(assetRepo, cfg.Ticker.MaxDrift)
	scheduler := infra.NewScheduler(priceTicker)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start price ticker scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		TokenCodec:    tokenCodec,
		AuthHandler:   delivery.NewAuthHandler(authService),
		UserHandler:   delivery.NewUserHandler(userService),
		AssetHandler:  delivery.NewAssetHandler(assetService),
		OrderHandler:  delivery.NewOrderHandler(orderService),
		WalletHandler: delivery.NewWalletHandler(walletService),
		Pinger:        db,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Brokersim API starting on %s (env: %s)", addr, cfg.Server.Env)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// ensureAdminUser creates the initial ADMIN account when the user table
// has no admin yet. Credentials come from env so deployments can rotate
// them without code changes.
func ensureAdminUser(ctx context.Context, userRepo domain.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@brokersim.local"
	}

	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		log.Printf("[OK] Admin user %s already exists", email)
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-now"
		log.Println("WARNING: ADMIN_PASSWORD not set, using default credentials")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("WARNING: Failed to hash admin password: %v", err)
		return
	}

	now := time.Now()
	admin := &domain.User{
		ID:           uuid.New(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("WARNING: Failed to create admin user: %v", err)
		return
	}

	log.Printf("[OK] Created admin user %s", email)
}
