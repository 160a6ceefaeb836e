package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/stock-portfolio-tracker/internal/render"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	app *App

	style string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list stored holdings without fetching prices" }
func (*holdingsCmd) Usage() string {
	return `tracker holdings [-style <style>]

  Lists every stored holding in the order it was first added.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.style, "style", render.StyleNoTTY, "output style: notty, ascii, dark or light")
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if !render.ValidStyle(c.style) {
		c.app.errorf("Error: unknown style %q", c.style)
		return subcommands.ExitUsageError
	}

	s, err := c.app.open()
	if err != nil {
		c.app.errorf("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	holdings, err := s.holdings.GetHoldings(ctx)
	if err != nil {
		c.app.errorf("Error reading holdings: %v", err)
		return subcommands.ExitFailure
	}

	if len(holdings) == 0 {
		fmt.Fprintln(c.app.Stdout, "No holdings stored yet.")
		return subcommands.ExitSuccess
	}

	md, err := render.Holdings(holdings)
	if err != nil {
		c.app.errorf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return c.app.printMarkdown(md, c.style)
}
