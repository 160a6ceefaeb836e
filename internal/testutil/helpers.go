package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/stock-portfolio-tracker/internal/quote"
	"github.com/ndewijer/stock-portfolio-tracker/internal/repository"
	"github.com/ndewijer/stock-portfolio-tracker/internal/service"
)

// NewTestHoldingService creates a HoldingService backed by db with a silent logger.
func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	return service.NewHoldingService(
		repository.NewHoldingRepository(db),
		zerolog.Nop(),
	)
}

// NewTestPortfolioService creates a PortfolioService backed by db that
// resolves quotes through provider, one lookup at a time.
func NewTestPortfolioService(t *testing.T, db *sql.DB, provider quote.Provider) *service.PortfolioService {
	t.Helper()

	return NewTestPortfolioServiceWithConcurrency(t, db, provider, 1)
}

// NewTestPortfolioServiceWithConcurrency is NewTestPortfolioService with a
// custom bound on concurrent quote lookups.
func NewTestPortfolioServiceWithConcurrency(
	t *testing.T,
	db *sql.DB,
	provider quote.Provider,
	concurrency int,
) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewHoldingRepository(db),
		provider,
		zerolog.Nop(),
		concurrency,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeTicker generates a unique upper-case ticker symbol for testing.
//
// Example usage:
//
//	ticker := testutil.MakeTicker("AAPL")
//	// Returns: "AAPL1A2B"
func MakeTicker(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Common test constants

// CommonExchanges contains frequently used stock exchanges
var CommonExchanges = []string{"NASDAQ", "NYSE", "LON", "TYO", "ETR", "EPA"}

// RandomExchange returns a random exchange from CommonExchanges.
func RandomExchange() string {
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return CommonExchanges[rand.Intn(len(CommonExchanges))]
}
