package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
	"github.com/ndewijer/stock-portfolio-tracker/internal/quote"
	"github.com/ndewijer/stock-portfolio-tracker/internal/repository"
)

// PortfolioService values the stored holdings. Every call reads the store,
// resolves one quote per holding and assembles a fresh Portfolio; nothing
// is kept between calls.
type PortfolioService struct {
	holdingRepo *repository.HoldingRepository
	quotes      quote.Provider
	logger      zerolog.Logger
	concurrency int
	now         func() time.Time // injectable clock for testing
}

// NewPortfolioService creates a new PortfolioService.
// concurrency bounds the number of quote lookups in flight; values below 1
// are treated as 1, which resolves holdings strictly one after another.
func NewPortfolioService(
	holdingRepo *repository.HoldingRepository,
	quotes quote.Provider,
	logger zerolog.Logger,
	concurrency int,
) *PortfolioService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PortfolioService{
		holdingRepo: holdingRepo,
		quotes:      quotes,
		logger:      logger,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// BuildPortfolio runs the view pipeline: scan the store, quote every
// holding and assemble positions in store order.
//
// A failed quote aborts the whole view: the first failure is returned and no
// portfolio is produced, so callers never render a partial table. With
// concurrency above 1 the remaining lookups are cancelled.
func (s *PortfolioService) BuildPortfolio(ctx context.Context) (*model.Portfolio, error) {
	holdings, err := s.holdingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	positions := make([]model.Position, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, h := range holdings {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q, err := s.quotes.GetQuote(gctx, h.Ticker, h.Exchange)
			if err != nil {
				return err
			}
			positions[i] = model.Position{
				Stock:    model.NewStock(h, q),
				Quantity: h.Quantity,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("holdings", len(holdings)).Msg("portfolio view aborted")
		return nil, err
	}

	s.logger.Debug().Int("positions", len(positions)).Msg("portfolio built")
	return model.NewPortfolio(positions), nil
}

// GetPortfolioSummary builds the portfolio and turns it into presentation
// rows sorted by descending market value, with allocation percentages.
func (s *PortfolioService) GetPortfolioSummary(ctx context.Context) (model.Summary, error) {
	viewID := uuid.New().String()
	start := s.now()

	portfolio, err := s.BuildPortfolio(ctx)
	if err != nil {
		return model.Summary{}, err
	}

	summary := portfolio.Summary(viewID, start.UTC())

	s.logger.Info().
		Str("view_id", viewID).
		Int("positions", portfolio.Len()).
		Str("total_value", summary.TotalValue.StringFixed(2)).
		Dur("took", s.now().Sub(start)).
		Msg("portfolio valued")

	return summary, nil
}
