package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-tracker/internal/api"
	"github.com/ndewijer/portfolio-tracker/internal/api/middleware"
	"github.com/ndewijer/portfolio-tracker/internal/database"
	"github.com/ndewijer/portfolio-tracker/internal/repository"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/version"
	"github.com/ndewijer/portfolio-tracker/internal/yahoo"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	authKeys, err := middleware.ParseKeys(cfg.Auth.Keys)
	if err != nil {
		return err
	}
	if len(authKeys) == 0 {
		log.Warn().Msg("AUTH_FERNET_KEYS is empty, authenticated routes will reject every request")
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}
	log.Info().Str("path", cfg.Database.Path).Int("migrations_applied", applied).Msg("database ready")

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)

	// Create services
	priceService, err := service.NewPriceService(
		yahoo.NewFinanceClient(cfg.Market.BaseURL, &http.Client{}),
		service.PriceServiceConfig{
			RequestTimeout:       cfg.Market.RequestTimeout,
			MaxConcurrentFetches: cfg.Market.MaxConcurrentFetches,
			CacheSize:            cfg.Market.CacheSize,
			CacheTTL:             cfg.Market.CacheTTL,
		},
		log,
	)
	if err != nil {
		return err
	}

	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(transactionRepo, log)
	portfolioService := service.NewPortfolioService(
		transactionRepo,
		priceService,
		service.PortfolioConfig{
			RiskFreeRate: cfg.Market.RiskFreeRate,
			Anchor:       anchorPolicy(cfg.Timeline.Anchor),
		},
		log,
	)

	// Create router
	router := api.NewRouter(systemService, portfolioService, transactionService, authKeys, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("version", version.Version).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal for graceful shutdown
	quit, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-quit.Done():
	}

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}
