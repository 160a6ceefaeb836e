// Package quote scrapes last-traded prices from a finance quote page and
// normalises them to USD.
package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/stock-portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
)

const (
	DefaultBaseURL = "https://www.google.com/finance/quote"
	DefaultTimeout = 10 * time.Second

	// quote pages are a few hundred KB; anything far beyond is not a quote page
	maxPageSize = 4 << 20
)

// Provider resolves a ticker on an exchange into a USD-normalised quote.
type Provider interface {
	GetQuote(ctx context.Context, ticker, exchange string) (model.Quote, error)
}

// Failure is returned for any quote that could not be produced. It names the
// ticker and exchange and matches apperrors.ErrQuoteUnavailable.
type Failure struct {
	Ticker   string
	Exchange string
	URL      string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("failed to load data from %s for %s:%s, please try again: %v", f.URL, f.Ticker, f.Exchange, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func (f *Failure) Is(target error) bool { return target == apperrors.ErrQuoteUnavailable }

// Client scrapes quote pages addressed as {base}/{TICKER}:{EXCHANGE} and
// currency pages addressed as {base}/{FROM}-USD.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	// collapses concurrent lookups of the same currency; nothing is cached
	fx singleflight.Group
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client, e.g. with an httptest server's client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new quote scraper.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetQuote fetches the current price and currency for ticker on exchange.
// Non-USD prices are converted with GetFXRate and rounded to cents. Every
// error is returned as a *Failure.
func (c *Client) GetQuote(ctx context.Context, ticker, exchange string) (model.Quote, error) {
	pageURL := c.quoteURL(ticker + ":" + exchange)
	fail := func(err error) (model.Quote, error) {
		c.logger.Warn().Err(err).Str("ticker", ticker).Str("exchange", exchange).Msg("quote lookup failed")
		return model.Quote{}, &Failure{Ticker: ticker, Exchange: exchange, URL: pageURL, Err: err}
	}

	lp, err := c.fetchLastPrice(ctx, pageURL)
	if err != nil {
		return fail(err)
	}
	currency := strings.ToUpper(strings.TrimSpace(lp.Currency))
	if currency == "" {
		return fail(fmt.Errorf("missing %s", attrCurrencyCode))
	}

	usdPrice := lp.Price
	if currency != model.USD {
		rate, err := c.GetFXRate(ctx, currency)
		if err != nil {
			return fail(err)
		}
		usdPrice = lp.Price.Mul(rate).Round(2)
	}

	c.logger.Debug().
		Str("ticker", ticker).
		Str("exchange", exchange).
		Str("price", lp.Price.String()).
		Str("currency", currency).
		Str("usd_price", usdPrice.String()).
		Msg("quote resolved")

	return model.Quote{
		Ticker:   ticker,
		Exchange: exchange,
		Price:    lp.Price,
		Currency: currency,
		USDPrice: usdPrice,
	}, nil
}

// GetFXRate returns the last price of one unit of currency in USD.
// Each call issues a fresh request; concurrent calls for the same currency
// share one request.
func (c *Client) GetFXRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return decimal.Decimal{}, apperrors.ErrInvalidCurrency
	}
	if currency == model.USD {
		return decimal.NewFromInt(1), nil
	}

	v, err, _ := c.fx.Do(currency, func() (any, error) {
		lp, err := c.fetchLastPrice(ctx, c.quoteURL(currency+"-"+model.USD))
		if err != nil {
			return nil, err
		}
		return lp.Price, nil
	})
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s to USD rate: %w", apperrors.ErrQuoteUnavailable, currency, err)
	}

	rate := v.(decimal.Decimal)
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s to USD rate is %s", apperrors.ErrQuoteUnavailable, currency, rate)
	}
	return rate, nil
}

func (c *Client) quoteURL(symbol string) string {
	return c.baseURL + "/" + url.PathEscape(symbol)
}

// fetchLastPrice executes the HTTP request and parses the returned page.
func (c *Client) fetchLastPrice(ctx context.Context, pageURL string) (lastPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return lastPrice{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return lastPrice{}, err
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", pageURL).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("quote page fetched")

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageSize))
		return lastPrice{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return parseLastPrice(io.LimitReader(resp.Body, maxPageSize))
}
