package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/stock-portfolio-tracker/internal/render"
)

// viewCmd holds the flags for the 'view' subcommand.
type viewCmd struct {
	app *App

	style string
	raw   bool
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "value the portfolio at current prices" }
func (*viewCmd) Usage() string {
	return `tracker view [-style <style>] [-raw]

  Fetches a current quote for every stored holding, converts it to USD and
  prints the positions sorted by market value with their allocation.
  If any quote cannot be fetched nothing is printed.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.style, "style", render.StyleNoTTY, "output style: notty, ascii, dark or light")
	f.BoolVar(&c.raw, "raw", false, "print the markdown source instead of rendering it")
}

func (c *viewCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if !c.raw && !render.ValidStyle(c.style) {
		c.app.errorf("Error: unknown style %q", c.style)
		return subcommands.ExitUsageError
	}

	s, err := c.app.open()
	if err != nil {
		c.app.errorf("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	summary, err := s.portfolio.GetPortfolioSummary(ctx)
	if err != nil {
		c.app.errorf("Error: %v", err)
		return subcommands.ExitFailure
	}

	md, err := render.Markdown(summary)
	if err != nil {
		c.app.errorf("Error: %v", err)
		return subcommands.ExitFailure
	}

	if c.raw {
		fmt.Fprint(c.app.Stdout, md)
		return subcommands.ExitSuccess
	}
	return c.app.printMarkdown(md, c.style)
}

func (a *App) printMarkdown(md, style string) subcommands.ExitStatus {
	out, err := render.Terminal(md, style)
	if err != nil {
		a.errorf("Error: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(a.Stdout, out)
	return subcommands.ExitSuccess
}
