package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcourt/internal/auth"
	"foodcourt/internal/chat"
	"foodcourt/internal/config"
	"foodcourt/internal/database"
	"foodcourt/internal/email"
	"foodcourt/internal/handler"
	"foodcourt/internal/repository"
	"foodcourt/internal/router"
	"foodcourt/internal/service"
	"foodcourt/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting foodcourt API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	foodRepo := repository.NewFoodRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	favouriteRepo := repository.NewFavouriteRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)

	// Initialize token manager
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize the receipt mailer (optional)
	var sender email.Sender
	if client := email.NewClient(cfg.Email, logger); client != nil {
		sender = client
	} else {
		logger.Info().Msg("receipt emails disabled")
	}

	// Initialize the menu assistant (optional)
	var geminiClient chat.Client
	if client := chat.NewGeminiClient(cfg.Gemini, logger); client != nil {
		geminiClient = client
	} else {
		logger.Info().Msg("menu assistant disabled (no Gemini API key)")
	}
	assistant := chat.NewAssistant(geminiClient, foodRepo, logger)

	// Initialize object storage for image uploads (optional)
	var uploader storage.Uploader
	s3Uploader, err := storage.NewS3Uploader(ctx, cfg.S3, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialise S3 uploader, image uploads disabled")
	} else if s3Uploader != nil {
		uploader = s3Uploader
	} else {
		logger.Info().Msg("image uploads disabled (S3 disabled)")
	}

	// Initialize services
	foodService := service.NewFoodService(foodRepo, logger)
	cartService := service.NewCartService(cartRepo, foodRepo, orderRepo, userRepo, logger)
	orderService := service.NewOrderService(orderRepo, userRepo, sender, logger)
	revenueService := service.NewRevenueService(orderRepo, logger)
	favouriteService := service.NewFavouriteService(favouriteRepo, foodRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, foodRepo, userRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService, logger),
		Food:      handler.NewFoodHandler(foodService, logger),
		Cart:      handler.NewCartHandler(cartService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Favourite: handler.NewFavouriteHandler(favouriteService, logger),
		Review:    handler.NewReviewHandler(reviewService, logger),
		Chat:      handler.NewChatHandler(assistant, logger),
		Upload:    handler.NewUploadHandler(uploader, logger),
		Admin:     handler.NewAdminHandler(orderService, revenueService, foodService, logger),
	}

	// Initialize router
	mux := router.New(handlers, tokens, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
