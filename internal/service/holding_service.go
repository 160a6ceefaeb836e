package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api/request"
	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
	"github.com/ndewijer/stock-portfolio-tracker/internal/repository"
	"github.com/ndewijer/stock-portfolio-tracker/internal/validation"
)

// HoldingService handles the upsert side of the tracker: validating and
// storing what the user owns.
type HoldingService struct {
	holdingRepo *repository.HoldingRepository
	logger      zerolog.Logger
}

// NewHoldingService creates a new HoldingService with the provided repository.
func NewHoldingService(holdingRepo *repository.HoldingRepository, logger zerolog.Logger) *HoldingService {
	return &HoldingService{
		holdingRepo: holdingRepo,
		logger:      logger,
	}
}

// UpsertHolding normalises ticker and exchange to upper case, validates the
// request and stores it, replacing any holding with the same ticker.
// Returns the holding as stored.
func (s *HoldingService) UpsertHolding(ctx context.Context, req request.UpsertHoldingRequest) (model.Holding, error) {
	req.Ticker = validation.NormalizeSymbol(req.Ticker)
	req.Exchange = validation.NormalizeSymbol(req.Exchange)

	if err := validation.ValidateUpsertHolding(req); err != nil {
		return model.Holding{}, err
	}

	if err := s.holdingRepo.Upsert(ctx, req.Ticker, req.Exchange, req.Quantity); err != nil {
		return model.Holding{}, err
	}

	s.logger.Info().
		Str("ticker", req.Ticker).
		Str("exchange", req.Exchange).
		Int64("quantity", req.Quantity).
		Msg("holding stored")

	return model.Holding{
		Ticker:   req.Ticker,
		Exchange: req.Exchange,
		Quantity: req.Quantity,
	}, nil
}

// GetHoldings retrieves all stored holdings in insertion order.
func (s *HoldingService) GetHoldings(ctx context.Context) ([]model.Holding, error) {
	return s.holdingRepo.GetAll(ctx)
}

// GetHolding retrieves the holding for ticker (case-insensitive).
func (s *HoldingService) GetHolding(ctx context.Context, ticker string) (model.Holding, error) {
	return s.holdingRepo.GetHolding(ctx, validation.NormalizeSymbol(ticker))
}
