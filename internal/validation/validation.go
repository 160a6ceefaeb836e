package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api/request"
	"github.com/ndewijer/stock-portfolio-tracker/internal/apperrors"
)

const maxSymbolLength = 20

// ParseQuantity parses user input into a holding quantity. Only whole,
// non-negative numbers are accepted; anything else wraps
// apperrors.ErrInvalidQuantity so callers can re-prompt.
func ParseQuantity(input string) (int64, error) {
	s := strings.TrimSpace(input)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidQuantity, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", apperrors.ErrInvalidQuantity, n)
	}
	return n, nil
}

// NormalizeSymbol trims and upper-cases a ticker or exchange code.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateUpsertHolding checks a holding request before it reaches the store.
func ValidateUpsertHolding(req request.UpsertHoldingRequest) error {
	errors := make(map[string]string)

	if msg := symbolProblem(req.Ticker, "ticker"); msg != "" {
		errors["ticker"] = msg
	}
	if msg := symbolProblem(req.Exchange, "exchange"); msg != "" {
		errors["exchange"] = msg
	}
	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// symbolProblem describes what is wrong with a ticker or exchange code, or
// returns "" when it is usable. Codes end up in the quote URL path, so
// separators are rejected.
func symbolProblem(s, field string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return field + " is required"
	case len(s) > maxSymbolLength:
		return fmt.Sprintf("%s must be %d characters or less", field, maxSymbolLength)
	case strings.ContainsAny(s, "/:?# "):
		return field + " contains invalid characters"
	}
	return ""
}

// ValidateTicker checks a ticker taken from a URL path.
func ValidateTicker(ticker string) error {
	if msg := symbolProblem(ticker, "ticker"); msg != "" {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidTicker, msg)
	}
	return nil
}
