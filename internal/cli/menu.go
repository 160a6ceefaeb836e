package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api/request"
	"github.com/ndewijer/stock-portfolio-tracker/internal/render"
	"github.com/ndewijer/stock-portfolio-tracker/internal/validation"
)

const welcomeBanner = `
              ............. STOCK PORTFOLIO TRACKER ..............

              Track your Stock Portfolio with ease.
              Let's Begin!

              Notice: All price values are expressed in USD.
            -----------------------------------------------------------------
`

const promptBanner = `
            ............. What would you like to do? .............
            Press 1 to CREATE/UPDATE Portfolio
            Press 2 to VIEW existing Portfolio
            Press any other key to quit.
`

const updatedBanner = `
              Your stock portfolio has been updated successfully....

              Press Y to add another Stock to your Portfolio
                    OR
              Press N to continue
`

const networkErrorMessage = "Network Error!!! Check your network connection & Try Again....."

// menuCmd runs the interactive prompt.
type menuCmd struct {
	app *App

	style string
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "interactive prompt to update or view the portfolio" }
func (*menuCmd) Usage() string {
	return `tracker menu [-style <style>]

  Asks whether to add holdings (1) or view the portfolio (2). Any other
  answer quits.
`
}

func (c *menuCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.style, "style", render.StyleNoTTY, "output style for the portfolio table")
}

func (c *menuCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := c.app.open()
	if err != nil {
		c.app.errorf("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	m := &menu{
		in:    bufio.NewScanner(c.app.Stdin),
		out:   c.app.Stdout,
		s:     s,
		style: c.style,
	}

	err = m.run(ctx)
	if errors.Is(err, io.EOF) {
		return subcommands.ExitSuccess
	}
	if err != nil {
		c.app.Logger.Debug().Err(err).Msg("menu aborted")
		fmt.Fprintln(c.app.Stdout, networkErrorMessage)
		c.app.errorf("%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// menu is one interactive session over a line-oriented input.
type menu struct {
	in    *bufio.Scanner
	out   io.Writer
	s     *session
	style string
}

func (m *menu) run(ctx context.Context) error {
	fmt.Fprint(m.out, welcomeBanner)
	fmt.Fprint(m.out, promptBanner)

	choice, err := m.readLine("")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return m.update(ctx)
	case "2":
		return m.view(ctx)
	}
	return nil
}

// update collects holdings until the user answers N.
func (m *menu) update(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "........................ Add a Stock .......................")

		ticker, err := m.readLine("Input Ticker symbol: ")
		if err != nil {
			return err
		}
		exchange, err := m.readLine("Input Exchange symbol: ")
		if err != nil {
			return err
		}
		quantity, err := m.readQuantity()
		if err != nil {
			return err
		}

		req := request.UpsertHoldingRequest{
			Ticker:   validation.NormalizeSymbol(ticker),
			Exchange: validation.NormalizeSymbol(exchange),
			Quantity: quantity,
		}

		fmt.Fprintf(m.out, `
              You just created a new stock with the details below:
                        Ticker Symbol: %s
                        Exchange: %s
                        Quantity: %d units

                Updating your Portfolio..............
`, req.Ticker, req.Exchange, req.Quantity)

		_, err = m.s.holdings.UpsertHolding(ctx, req)
		var verr *validation.Error
		if errors.As(err, &verr) {
			fmt.Fprintf(m.out, "Could not store this stock: %v\n", verr)
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprint(m.out, updatedBanner)
		answer, err := m.readLine(": ")
		if err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(answer), "N") {
			return nil
		}
	}
}

// readQuantity prompts until a whole, non-negative number is entered.
func (m *menu) readQuantity() (int64, error) {
	for {
		line, err := m.readLine("Input quantity in holdings (Integer only): ")
		if err != nil {
			return 0, err
		}
		q, err := validation.ParseQuantity(line)
		if err == nil {
			return q, nil
		}
		fmt.Fprintln(m.out, "Quantity should be an integer (Numbers)")
	}
}

func (m *menu) view(ctx context.Context) error {
	summary, err := m.s.portfolio.GetPortfolioSummary(ctx)
	if err != nil {
		return err
	}

	md, err := render.Markdown(summary)
	if err != nil {
		return err
	}
	out, err := render.Terminal(md, m.style)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, out)
	return nil
}

// readLine prints prompt and returns the next input line. It returns
// io.EOF once the input is exhausted.
func (m *menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}
