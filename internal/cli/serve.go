package cli

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api"
	"github.com/ndewijer/stock-portfolio-tracker/internal/database"
)

const shutdownTimeout = 30 * time.Second

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	app *App

	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the HTTP API" }
func (*serveCmd) Usage() string {
	return `tracker serve [-addr <host:port>]

  Serves the holdings and portfolio endpoints under /api until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", c.app.Config.Server.Addr, "listen address")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	s, err := c.app.open()
	if err != nil {
		c.app.errorf("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := database.Migrate(ctx, s.db); err != nil {
		c.app.errorf("Error migrating database: %v", err)
		return subcommands.ExitFailure
	}

	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		c.app.errorf("Error listening on %s: %v", c.addr, err)
		return subcommands.ExitFailure
	}

	if err := c.serve(ctx, ln, s); err != nil {
		c.app.errorf("Server error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// serve runs the API on ln until ctx is cancelled, then shuts down gracefully.
func (c *serveCmd) serve(ctx context.Context, ln net.Listener, s *session) error {
	logger := c.app.Logger

	router := api.NewRouter(api.Services{
		System:    s.system,
		Holding:   s.holdings,
		Portfolio: s.portfolio,
	}, c.app.Config, logger)

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info().Msg("server exited")
	return nil
}
