package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/stock-portfolio-tracker/internal/testutil"
)

func TestHoldingHandler_Holdings(t *testing.T) {
	t.Run("returns empty list for empty store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
		w := httptest.NewRecorder()

		handler.Holdings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("Expected [], got %s", body)
		}
	})

	t.Run("returns holdings in insertion order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		testutil.CreateHolding(t, db, "MSFT", "NASDAQ", 1)
		testutil.CreateHolding(t, db, "AAPL", "NASDAQ", 10)

		req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
		w := httptest.NewRecorder()

		handler.Holdings(w, req)

		response := testutil.DecodeJSON[[]HoldingResponse](t, w)
		if len(response) != 2 || response[0].Ticker != "MSFT" || response[1].Ticker != "AAPL" {
			t.Errorf("Unexpected holdings: %+v", response)
		}
	})

	t.Run("returns 500 when database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
		w := httptest.NewRecorder()

		handler.Holdings(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestHoldingHandler_Holding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewHoldingHandler(testutil.NewTestHoldingService(t, db))
	testutil.CreateHolding(t, db, "AAPL", "NASDAQ", 10)

	t.Run("returns the holding case-insensitively", func(t *testing.T) {
		req := testutil.NewTickerRequest("aapl")
		w := httptest.NewRecorder()

		handler.Holding(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		response := testutil.DecodeJSON[HoldingResponse](t, w)
		if response.Ticker != "AAPL" || response.Quantity != 10 {
			t.Errorf("Unexpected holding: %+v", response)
		}
	})

	t.Run("returns 404 for unknown ticker", func(t *testing.T) {
		req := testutil.NewTickerRequest("NOPE")
		w := httptest.NewRecorder()

		handler.Holding(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestHoldingHandler_UpsertHolding(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantRows   int
	}{
		{name: "stores a valid holding", body: `{"ticker":"aapl","exchange":"nasdaq","quantity":10}`, wantStatus: http.StatusOK, wantRows: 1},
		{name: "rejects negative quantity", body: `{"ticker":"AAPL","exchange":"NASDAQ","quantity":-1}`, wantStatus: http.StatusBadRequest},
		{name: "rejects fractional quantity", body: `{"ticker":"AAPL","exchange":"NASDAQ","quantity":1.5}`, wantStatus: http.StatusBadRequest},
		{name: "rejects missing exchange", body: `{"ticker":"AAPL","quantity":1}`, wantStatus: http.StatusBadRequest},
		{name: "rejects unknown fields", body: `{"ticker":"AAPL","exchange":"NASDAQ","quantity":1,"price":3}`, wantStatus: http.StatusBadRequest},
		{name: "rejects malformed JSON", body: `{"ticker":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			handler := NewHoldingHandler(testutil.NewTestHoldingService(t, db))

			req := testutil.NewUpsertRequest(tt.body)
			w := httptest.NewRecorder()

			handler.UpsertHolding(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			testutil.AssertRowCount(t, db, "stock_table", tt.wantRows)
		})
	}

	t.Run("second post replaces the first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		for _, body := range []string{
			`{"ticker":"AAPL","exchange":"NASDAQ","quantity":10}`,
			`{"ticker":"AAPL","exchange":"NASDAQ","quantity":20}`,
		} {
			req := testutil.NewUpsertRequest(body)
			w := httptest.NewRecorder()
			handler.UpsertHolding(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
			}
		}

		testutil.AssertRowCount(t, db, "stock_table", 1)
	})
}
