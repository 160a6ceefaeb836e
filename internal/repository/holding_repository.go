package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/ndewijer/stock-portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/stock-portfolio-tracker/internal/database"
	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
)

// HoldingRepository provides data access methods for the stock_table table.
// Every row is keyed by ticker; writing an existing ticker replaces its
// exchange and quantity.
type HoldingRepository struct {
	db *sql.DB

	mu       sync.Mutex
	migrated bool
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// ensureSchema creates stock_table on first use. A failed attempt is retried
// on the next call.
func (r *HoldingRepository) ensureSchema(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.migrated {
		return nil
	}
	if err := database.Migrate(ctx, r.db); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	r.migrated = true
	return nil
}

// Upsert inserts the holding for ticker, or replaces the exchange and
// quantity of the existing one. Repeating the same call leaves the table
// unchanged.
func (r *HoldingRepository) Upsert(ctx context.Context, ticker, exchange string, quantity int64) error {
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}

	query := `
		INSERT INTO stock_table (Ticker, Exchange, Quantity)
		VALUES (?, ?, ?)
		ON CONFLICT(Ticker) DO UPDATE SET
			Exchange = excluded.Exchange,
			Quantity = excluded.Quantity
	`

	if _, err := r.db.ExecContext(ctx, query, ticker, exchange, quantity); err != nil {
		return fmt.Errorf("%w: failed to upsert holding %s: %w", apperrors.ErrPersistence, ticker, err)
	}

	return nil
}

// GetAll retrieves every holding in insertion order.
// Returns an empty slice if no holdings are stored.
func (r *HoldingRepository) GetAll(ctx context.Context) ([]model.Holding, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT Ticker, Exchange, Quantity
		FROM stock_table
		ORDER BY rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query stock_table: %w", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		var h model.Holding
		var exchange sql.NullString
		var quantity sql.NullInt64

		if err := rows.Scan(&h.Ticker, &exchange, &quantity); err != nil {
			return nil, fmt.Errorf("%w: failed to scan stock_table results: %w", apperrors.ErrPersistence, err)
		}
		h.Exchange = exchange.String
		h.Quantity = quantity.Int64

		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating stock_table: %w", apperrors.ErrPersistence, err)
	}

	return holdings, nil
}

// GetHolding retrieves the holding stored for ticker.
// Returns apperrors.ErrHoldingNotFound if there is none.
func (r *HoldingRepository) GetHolding(ctx context.Context, ticker string) (model.Holding, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return model.Holding{}, err
	}

	query := `
		SELECT Ticker, Exchange, Quantity
		FROM stock_table
		WHERE Ticker = ?
	`

	var h model.Holding
	var exchange sql.NullString
	var quantity sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, ticker).Scan(&h.Ticker, &exchange, &quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("%w: failed to query holding %s: %w", apperrors.ErrPersistence, ticker, err)
	}
	h.Exchange = exchange.String
	h.Quantity = quantity.Int64

	return h, nil
}
