package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrHoldingNotFound indicates that no holding is stored for the given ticker.
	ErrHoldingNotFound = errors.New("holding not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidQuantity indicates that a quantity is not a whole, non-negative number.
	ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")

	// ErrEmptyPortfolio indicates that allocations were requested for a portfolio
	// whose total value is zero.
	ErrEmptyPortfolio = errors.New("portfolio has no value to allocate")

	// ErrInvalidTicker indicates a ticker that is empty, too long or
	// contains URL separators.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrInvalidCurrency indicates an empty currency code.
	ErrInvalidCurrency = errors.New("currency is required")

	// ErrInvalidRequest indicates a request body that could not be decoded.
	ErrInvalidRequest = errors.New("invalid request body")
)

// Operation failure errors represent system-level failures when storing or
// fetching data.
var (
	// ErrPersistence indicates that the holding store could not be opened,
	// migrated, read or written. It is not retried.
	ErrPersistence = errors.New("persistence failure")

	// ErrQuoteUnavailable indicates that the price source could not produce a
	// quote: it was unreachable, the page could not be parsed, or the expected
	// fields were absent.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToUpsertHolding    = errors.New("failed to upsert holding")
	ErrFailedToBuildPortfolio   = errors.New("failed to build portfolio")
)
