package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-tracker/internal/repository"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/yahoo"
)

// NewTestPriceService creates an uncached PriceService over client.
func NewTestPriceService(t *testing.T, client yahoo.Client) *service.PriceService {
	t.Helper()

	priceService, err := service.NewPriceService(client, service.PriceServiceConfig{
		RequestTimeout:       time.Second,
		MaxConcurrentFetches: 4,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create price service: %v", err)
	}
	return priceService
}

// NewTestPortfolioService creates a PortfolioService with the cost-basis anchor
// and a clock fixed at now.
func NewTestPortfolioService(t *testing.T, db *sql.DB, client yahoo.Client, now time.Time) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewTransactionRepository(db),
		NewTestPriceService(t, client),
		service.PortfolioConfig{
			RiskFreeRate: service.DefaultRiskFreeRate,
			Anchor:       service.AnchorCostBasis,
		},
		zerolog.Nop(),
	).WithClock(func() time.Time { return now })
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(repository.NewTransactionRepository(db), zerolog.Nop())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
