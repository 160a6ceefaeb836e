package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api/request"
	"github.com/ndewijer/stock-portfolio-tracker/internal/validation"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	app *App

	ticker   string
	exchange string
	quantity string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create or update a holding" }
func (*addCmd) Usage() string {
	return `tracker add -ticker <ticker> -exchange <exchange> -quantity <n>

  Stores the number of units held of ticker on exchange. Adding a ticker
  that is already stored replaces its exchange and quantity.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "ticker symbol, e.g. AAPL")
	f.StringVar(&c.exchange, "exchange", "", "exchange code, e.g. NASDAQ")
	f.StringVar(&c.quantity, "quantity", "", "whole number of units held")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	quantity, err := validation.ParseQuantity(c.quantity)
	if err != nil {
		c.app.errorf("Error: %v", err)
		return subcommands.ExitUsageError
	}

	s, err := c.app.open()
	if err != nil {
		c.app.errorf("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	h, err := s.holdings.UpsertHolding(ctx, request.UpsertHoldingRequest{
		Ticker:   c.ticker,
		Exchange: c.exchange,
		Quantity: quantity,
	})
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.app.errorf("Error: %v", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		c.app.errorf("Error storing holding: %v", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.app.Stdout, "Stored %s:%s, %d units\n", h.Ticker, h.Exchange, h.Quantity)
	return subcommands.ExitSuccess
}
