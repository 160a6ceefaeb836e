package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/stock-portfolio-tracker/internal/testutil"
)

// TestPortfolioHandler_Portfolio tests the valuation endpoint.
//
// WHY: API clients rely on the status code to tell a broken price source
// (502) from a broken store (500), and on positions arriving sorted.
func TestPortfolioHandler_Portfolio(t *testing.T) {
	t.Run("returns sorted positions with allocations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "AAPL", "NASDAQ", 2)
		testutil.CreateHolding(t, db, "MSFT", "NASDAQ", 6)
		stub := testutil.NewStubQuoteProvider().
			WithUSDQuote("AAPL", 200).
			WithUSDQuote("MSFT", 100)
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, stub))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSON[PortfolioResponse](t, w)

		if response.TotalValue != 1000 {
			t.Errorf("Expected total 1000, got %v", response.TotalValue)
		}
		if response.TotalValueDisplay != "$1,000.00" {
			t.Errorf("Expected $1,000.00, got %s", response.TotalValueDisplay)
		}
		if response.ViewID == "" {
			t.Error("Expected a view ID")
		}
		if len(response.Positions) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(response.Positions))
		}

		first, second := response.Positions[0], response.Positions[1]
		if first.Ticker != "MSFT" || second.Ticker != "AAPL" {
			t.Errorf("Expected MSFT then AAPL, got %s then %s", first.Ticker, second.Ticker)
		}
		if first.Allocation == nil || *first.Allocation != 60 {
			t.Errorf("Expected MSFT allocation 60, got %v", first.Allocation)
		}
		if second.Allocation == nil || *second.Allocation != 40 {
			t.Errorf("Expected AAPL allocation 40, got %v", second.Allocation)
		}
	})

	t.Run("empty store returns an empty portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewStubQuoteProvider()))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"positions":[]`) {
			t.Errorf("Expected empty positions array, got %s", w.Body.String())
		}
	})

	t.Run("returns markdown on request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "AAPL", "NASDAQ", 20)
		stub := testutil.NewStubQuoteProvider().WithUSDQuote("AAPL", 200)
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, stub))

		req := testutil.NewPortfolioRequest("markdown")
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/markdown") {
			t.Errorf("Expected markdown content type, got %s", w.Header().Get("Content-Type"))
		}
		if !strings.Contains(w.Body.String(), "Total Portfolio value: $4,000.00.") {
			t.Errorf("Expected total line, got %s", w.Body.String())
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		stub := testutil.NewStubQuoteProvider()
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, stub))

		req := testutil.NewPortfolioRequest("xml")
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		if stub.CallCount() != 0 {
			t.Errorf("Expected no quote lookups, got %d", stub.CallCount())
		}
	})

	t.Run("returns 502 when a quote fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "AAPL", "NASDAQ", 20)
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewStubQuoteProvider()))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "AAPL:NASDAQ") {
			t.Errorf("Expected failure to name AAPL:NASDAQ, got %s", w.Body.String())
		}
	})

	t.Run("returns 500 when database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewStubQuoteProvider()))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
