package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api/request"
	"github.com/ndewijer/stock-portfolio-tracker/internal/api/response"
	"github.com/ndewijer/stock-portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
	"github.com/ndewijer/stock-portfolio-tracker/internal/service"
)

// HoldingHandler handles holding-related HTTP requests
type HoldingHandler struct {
	holdingService *service.HoldingService
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdingService *service.HoldingService) *HoldingHandler {
	return &HoldingHandler{
		holdingService: holdingService,
	}
}

// HoldingResponse represents one stored holding
type HoldingResponse struct {
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Quantity int64  `json:"quantity"`
}

func newHoldingResponse(h model.Holding) HoldingResponse {
	return HoldingResponse{
		Ticker:   h.Ticker,
		Exchange: h.Exchange,
		Quantity: h.Quantity,
	}
}

// Holdings handles GET requests listing every stored holding.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with []HoldingResponse in insertion order
// Error: 500 Internal Server Error if the store cannot be read
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.GetHoldings(r.Context())
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveHoldings.Error(), err)
		return
	}

	resp := make([]HoldingResponse, len(holdings))
	for i, holding := range holdings {
		resp[i] = newHoldingResponse(holding)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Holding handles GET requests for a single holding.
//
// Endpoint: GET /api/holdings/{ticker}
// Response: 200 OK with HoldingResponse
// Error: 404 Not Found if no holding is stored for the ticker
func (h *HoldingHandler) Holding(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	holding, err := h.holdingService.GetHolding(r.Context(), ticker)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveHoldings.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, newHoldingResponse(holding))
}

// UpsertHolding handles POST requests that create or replace a holding.
//
// Endpoint: POST /api/holdings
// Request: {"ticker": "AAPL", "exchange": "NASDAQ", "quantity": 10}
// Response: 200 OK with the stored HoldingResponse
// Error: 400 Bad Request for malformed or invalid input
func (h *HoldingHandler) UpsertHolding(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertHoldingRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	holding, err := h.holdingService.UpsertHolding(r.Context(), req)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToUpsertHolding.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, newHoldingResponse(holding))
}
