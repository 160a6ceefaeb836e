package testutil

import (
	"database/sql"
	"testing"

	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
)

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	// Simple creation with defaults
//	holding := testutil.NewHolding().Build(t, db)
//
//	// Customized holding
//	holding := testutil.NewHolding().
//	    WithTicker("AAPL").
//	    WithExchange("NASDAQ").
//	    WithQuantity(10).
//	    Build(t, db)
type HoldingBuilder struct {
	Ticker   string
	Exchange string
	Quantity int64
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	return &HoldingBuilder{
		Ticker:   MakeTicker("TST"),
		Exchange: "NASDAQ",
		Quantity: 10,
	}
}

// WithTicker sets a custom ticker.
func (b *HoldingBuilder) WithTicker(ticker string) *HoldingBuilder {
	b.Ticker = ticker
	return b
}

// WithExchange sets a custom exchange.
func (b *HoldingBuilder) WithExchange(exchange string) *HoldingBuilder {
	b.Exchange = exchange
	return b
}

// WithQuantity sets a custom quantity.
func (b *HoldingBuilder) WithQuantity(quantity int64) *HoldingBuilder {
	b.Quantity = quantity
	return b
}

// Build inserts the holding into stock_table and returns it.
// The table must exist; use SetupTestDB.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	query := `
		INSERT INTO stock_table (Ticker, Exchange, Quantity)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, b.Ticker, b.Exchange, b.Quantity)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Holding{
		Ticker:   b.Ticker,
		Exchange: b.Exchange,
		Quantity: b.Quantity,
	}
}

// Convenience functions

// CreateHolding creates a holding with the given values.
//
// Example usage:
//
//	holding := testutil.CreateHolding(t, db, "AAPL", "NASDAQ", 10)
func CreateHolding(t *testing.T, db *sql.DB, ticker, exchange string, quantity int64) model.Holding {
	t.Helper()
	return NewHolding().
		WithTicker(ticker).
		WithExchange(exchange).
		WithQuantity(quantity).
		Build(t, db)
}

// CreateHoldings creates count holdings with unique tickers.
func CreateHoldings(t *testing.T, db *sql.DB, count int) []model.Holding {
	t.Helper()

	holdings := make([]model.Holding, count)
	for i := range count {
		holdings[i] = NewHolding().WithExchange(RandomExchange()).Build(t, db)
	}
	return holdings
}
