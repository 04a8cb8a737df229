package api

import (
	"net/http"

	"github.com/fernet/fernet-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/ndewijer/portfolio-tracker/internal/api/middleware"
	"github.com/ndewijer/portfolio-tracker/internal/config"
	"github.com/ndewijer/portfolio-tracker/internal/service"
)

// NewRouter creates and configures the HTTP router.
// System routes are public; everything else requires a bearer token signed
// with one of authKeys.
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	transactionService *service.TransactionService,
	authKeys []*fernet.Key,
	cfg *config.Config,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.Authenticate(authKeys, cfg.Auth.TokenTTL, log))

			r.Route("/overview", func(r chi.Router) {
				overviewHandler := handlers.NewOverviewHandler(portfolioService)
				r.Get("/", overviewHandler.Overview)
				r.Get("/performance", overviewHandler.Performance)
			})

			r.Route("/analytics", func(r chi.Router) {
				analyticsHandler := handlers.NewAnalyticsHandler(portfolioService)
				r.Get("/", analyticsHandler.Analytics)
				r.Get("/benchmarks", analyticsHandler.Benchmarks)
			})

			r.Route("/transactions", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(transactionService)
				r.Get("/", transactionHandler.Transactions)
				r.Post("/", transactionHandler.CreateTransaction)
				r.With(custommiddleware.ValidateUUIDMiddleware).Delete("/{uuid}", transactionHandler.DeleteTransaction)
			})
		})
	})

	return r
}
