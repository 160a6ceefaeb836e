package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
)

func summaryOf(t *testing.T, quotes map[string]float64, quantities map[string]int64, order []string) model.Summary {
	t.Helper()

	positions := make([]model.Position, 0, len(order))
	for _, ticker := range order {
		p := decimal.NewFromFloat(quotes[ticker])
		stock := model.NewStock(
			model.Holding{Ticker: ticker, Exchange: "NASDAQ", Quantity: quantities[ticker]},
			model.Quote{Ticker: ticker, Exchange: "NASDAQ", Price: p, Currency: model.USD, USDPrice: p},
		)
		positions = append(positions, model.Position{Stock: stock, Quantity: quantities[ticker]})
	}
	return model.NewPortfolio(positions).Summary("view-1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestMarkdown(t *testing.T) {
	s := summaryOf(t,
		map[string]float64{"AAPL": 200, "MSFT": 100},
		map[string]int64{"AAPL": 2, "MSFT": 6},
		[]string{"AAPL", "MSFT"},
	)

	md, err := Markdown(s)
	require.NoError(t, err)

	want := strings.Join([]string{
		"| Ticker | Exchange | Quantity (Units) | Price ($) | Market Value ($) | % Allocation |",
		"|:-------|:---------|-----------------:|----------:|-----------------:|-------------:|",
		"| MSFT | NASDAQ | 6 | 100.00 | 600.00 | 60.00 |",
		"| AAPL | NASDAQ | 2 | 200.00 | 400.00 | 40.00 |",
		"",
		"Total Portfolio value: $1,000.00.",
		"",
	}, "\n")
	assert.Equal(t, want, md)
}

func TestMarkdown_Empty(t *testing.T) {
	md, err := Markdown(model.NewPortfolio(nil).Summary("view-1", time.Now()))
	require.NoError(t, err)

	assert.Contains(t, md, "| Ticker |")
	assert.Contains(t, md, "Total Portfolio value: $0.00.")
}

func TestMarkdown_ZeroTotalHasNoAllocation(t *testing.T) {
	s := summaryOf(t,
		map[string]float64{"AAPL": 200},
		map[string]int64{"AAPL": 0},
		[]string{"AAPL"},
	)

	md, err := Markdown(s)
	require.NoError(t, err)
	assert.Contains(t, md, "| AAPL | NASDAQ | 0 | 200.00 | 0.00 | - |")
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"4000", "$4,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"19.225", "$19.23"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUSD(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestTerminal(t *testing.T) {
	s := summaryOf(t,
		map[string]float64{"AAPL": 200},
		map[string]int64{"AAPL": 20},
		[]string{"AAPL"},
	)

	md, err := Markdown(s)
	require.NoError(t, err)

	out, err := Terminal(md, StyleASCII)
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "4000.00")
	assert.Contains(t, out, "$4,000.00")

	_, err = Terminal(md, "neon")
	assert.Error(t, err)
}

func TestHoldings(t *testing.T) {
	md, err := Holdings([]model.Holding{
		{Ticker: "AAPL", Exchange: "NASDAQ", Quantity: 20},
		{Ticker: "SAP", Exchange: "ETR", Quantity: 3},
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		"| Ticker | Exchange | Quantity (Units) |",
		"|:-------|:---------|-----------------:|",
		"| AAPL | NASDAQ | 20 |",
		"| SAP | ETR | 3 |",
		"",
	}, "\n")
	assert.Equal(t, want, md)
}
