// Package cli implements the tracker's subcommands.
package cli

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/ndewijer/stock-portfolio-tracker/internal/config"
	"github.com/ndewijer/stock-portfolio-tracker/internal/database"
	"github.com/ndewijer/stock-portfolio-tracker/internal/quote"
	"github.com/ndewijer/stock-portfolio-tracker/internal/repository"
	"github.com/ndewijer/stock-portfolio-tracker/internal/service"
)

// App carries what every subcommand needs: configuration, a logger and
// the standard streams.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Quotes replaces the scraper when set.
	Quotes quote.Provider
}

// Register adds the tracker subcommands to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&menuCmd{app: app}, "")
	c.Register(&addCmd{app: app}, "holdings")
	c.Register(&holdingsCmd{app: app}, "holdings")
	c.Register(&viewCmd{app: app}, "portfolio")
	c.Register(&serveCmd{app: app}, "server")
}

// session is one opened database with the services built on top of it.
type session struct {
	db        *sql.DB
	holdings  *service.HoldingService
	portfolio *service.PortfolioService
	system    *service.SystemService
}

func (a *App) open() (*session, error) {
	db, err := database.Open(a.Config.Database.Path)
	if err != nil {
		return nil, err
	}

	a.Logger.Debug().Str("path", a.Config.Database.Path).Msg("database opened")

	quotes := a.Quotes
	if quotes == nil {
		quotes = quote.NewClient(
			quote.WithBaseURL(a.Config.Quote.BaseURL),
			quote.WithTimeout(a.Config.Quote.Timeout),
			quote.WithLogger(a.Logger),
		)
	}

	holdingRepo := repository.NewHoldingRepository(db)

	return &session{
		db:        db,
		holdings:  service.NewHoldingService(holdingRepo, a.Logger),
		portfolio: service.NewPortfolioService(holdingRepo, quotes, a.Logger, a.Config.Portfolio.Concurrency),
		system:    service.NewSystemService(db),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func (a *App) errorf(format string, args ...any) {
	fmt.Fprintf(a.Stderr, format+"\n", args...)
}
