package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
	"github.com/ndewijer/stock-portfolio-tracker/internal/quote"
)

// StubQuoteProvider is a quote.Provider that returns predefined quotes
// instead of scraping. Safe for concurrent use.
type StubQuoteProvider struct {
	mu     sync.Mutex
	quotes map[string]model.Quote
	errs   map[string]error
	calls  []string

	// Block, when set, is received from before every lookup returns.
	// Tests use it to hold lookups in flight.
	Block chan struct{}
}

// NewStubQuoteProvider creates an empty stub. Unknown tickers fail.
func NewStubQuoteProvider() *StubQuoteProvider {
	return &StubQuoteProvider{
		quotes: map[string]model.Quote{},
		errs:   map[string]error{},
	}
}

// WithUSDQuote registers a USD-denominated quote for ticker.
func (s *StubQuoteProvider) WithUSDQuote(ticker string, price float64) *StubQuoteProvider {
	p := decimal.NewFromFloat(price)
	return s.WithQuote(model.Quote{
		Ticker:   ticker,
		Price:    p,
		Currency: model.USD,
		USDPrice: p,
	})
}

// WithQuote registers q for q.Ticker.
func (s *StubQuoteProvider) WithQuote(q model.Quote) *StubQuoteProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[strings.ToUpper(q.Ticker)] = q
	return s
}

// WithFailure makes lookups of ticker fail with a *quote.Failure wrapping err.
func (s *StubQuoteProvider) WithFailure(ticker string, err error) *StubQuoteProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = errors.New("stub failure")
	}
	s.errs[strings.ToUpper(ticker)] = err
	return s
}

// GetQuote implements quote.Provider.
func (s *StubQuoteProvider) GetQuote(ctx context.Context, ticker, exchange string) (model.Quote, error) {
	key := strings.ToUpper(ticker)

	s.mu.Lock()
	s.calls = append(s.calls, key)
	q, ok := s.quotes[key]
	err := s.errs[key]
	block := s.Block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return model.Quote{}, &quote.Failure{Ticker: ticker, Exchange: exchange, Err: ctx.Err()}
		}
	}

	if err != nil {
		return model.Quote{}, &quote.Failure{Ticker: ticker, Exchange: exchange, Err: err}
	}
	if !ok {
		return model.Quote{}, &quote.Failure{Ticker: ticker, Exchange: exchange, Err: errors.New("no stub quote")}
	}

	q.Ticker = ticker
	q.Exchange = exchange
	return q, nil
}

// Calls returns the tickers looked up so far, in call order.
func (s *StubQuoteProvider) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount returns the number of lookups so far.
func (s *StubQuoteProvider) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
