package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rhea-commerce/internal/auth"
	"rhea-commerce/internal/config"
	"rhea-commerce/internal/database"
	"rhea-commerce/internal/handler"
	"rhea-commerce/internal/repository"
	"rhea-commerce/internal/router"
	"rhea-commerce/internal/seed"
	"rhea-commerce/internal/service"

	"github.com/rs/zerolog"
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
	logger.Info().Msg("starting rhea-commerce API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations before anything touches the database
	if err := database.RunMigrations(cfg.Database, cfg.Migrations, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize cart store
	redisClient, err := database.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart store: %w", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	cartRepo := repository.NewCartRepository(redisClient, time.Duration(cfg.Redis.CartTTL)*time.Second, logger)

	// Seed the catalogue on startup when enabled, from S3 with a local
	// file fallback
	if cfg.Seed.Enabled {
		if err := seedCatalogue(ctx, cfg.Seed, productRepo, userRepo, logger); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	// Initialize token manager
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiry)*time.Second)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, couponRepo, cartRepo, cfg.Shipping, logger)
	userService := service.NewUserService(userRepo, tokens, logger)
	adminService := service.NewAdminService(orderRepo, productRepo, userRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	authHandler := handler.NewAuthHandler(userService, logger)
	adminHandler := handler.NewAdminHandler(adminService, userService, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, orderHandler, authHandler, adminHandler, tokens, logger)

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

// seedCatalogue loads the seed document and applies it. S3 is preferred when
// configured; a failed S3 load falls back to the local file.
func seedCatalogue(
	ctx context.Context,
	cfg config.SeedConfig,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) error {
	var doc *seed.Document

	if cfg.S3Bucket != "" {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 seed loader, falling back to local file")
		} else {
			doc, err = s3Loader.Load(ctx, cfg.S3Key)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to load seed document from S3, falling back to local file")
				doc = nil
			}
		}
	}

	if doc == nil {
		var err error
		doc, err = seed.NewFileLoader(logger).Load(ctx, cfg.FilePath)
		if err != nil {
			return err
		}
	}

	return seed.NewSeeder(productRepo, userRepo, logger).Run(ctx, doc)
}
