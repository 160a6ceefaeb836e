package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// NewTickerRequest builds GET /api/holdings/{ticker} with the chi route
// parameter set, so handlers can be called without the router.
func NewTickerRequest(ticker string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/holdings/"+url.PathEscape(ticker), nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("ticker", ticker)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// NewPortfolioRequest builds GET /api/portfolio, adding ?format= when
// format is not empty.
func NewPortfolioRequest(format string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	if format != "" {
		req.URL.RawQuery = url.Values{"format": {format}}.Encode()
	}
	return req
}

// NewUpsertRequest builds POST /api/holdings carrying body as JSON.
//
// Example:
//
//	req := testutil.NewUpsertRequest(`{"ticker":"AAPL","exchange":"NASDAQ","quantity":10}`)
func NewUpsertRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/holdings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON decodes the recorded response body into T, failing the test
// on malformed JSON.
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v (body: %s)", err, w.Body.String())
	}
	return v
}
