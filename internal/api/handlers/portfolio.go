package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api/response"
	"github.com/ndewijer/stock-portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/stock-portfolio-tracker/internal/model"
	"github.com/ndewijer/stock-portfolio-tracker/internal/render"
	"github.com/ndewijer/stock-portfolio-tracker/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioResponse represents one valuation of the stored holdings
type PortfolioResponse struct {
	ViewID            string             `json:"view_id"`
	GeneratedAt       time.Time          `json:"generated_at"`
	TotalValue        float64            `json:"total_value"`
	TotalValueDisplay string             `json:"total_value_display"`
	Positions         []PositionResponse `json:"positions"`
}

// PositionResponse is one row of the portfolio table. Allocation is null
// when the portfolio has no value.
type PositionResponse struct {
	Ticker      string   `json:"ticker"`
	Exchange    string   `json:"exchange"`
	Quantity    int64    `json:"quantity"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	USDPrice    float64  `json:"usd_price"`
	MarketValue float64  `json:"market_value"`
	Allocation  *float64 `json:"allocation"`
}

// Portfolio handles GET requests valuing every stored holding at current prices.
// With ?format=markdown the table is returned as markdown text instead of JSON.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioResponse, positions sorted by market value
// Error: 502 Bad Gateway if any quote could not be fetched
// Error: 500 Internal Server Error if the store cannot be read
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "markdown" {
		response.RespondError(w, http.StatusBadRequest, "unsupported format", format)
		return
	}

	summary, err := h.portfolioService.GetPortfolioSummary(r.Context())
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToBuildPortfolio.Error(), err)
		return
	}

	if format == "markdown" {
		md, err := render.Markdown(summary)
		if err != nil {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildPortfolio.Error(), err.Error())
			return
		}
		response.RespondText(w, http.StatusOK, "text/markdown; charset=utf-8", md)
		return
	}

	response.RespondJSON(w, http.StatusOK, newPortfolioResponse(summary))
}

func newPortfolioResponse(s model.Summary) PortfolioResponse {
	resp := PortfolioResponse{
		ViewID:            s.ViewID,
		GeneratedAt:       s.GeneratedAt,
		TotalValue:        s.TotalValue.InexactFloat64(),
		TotalValueDisplay: render.FormatUSD(s.TotalValue),
		Positions:         make([]PositionResponse, len(s.Rows)),
	}

	for i, row := range s.Rows {
		pos := PositionResponse{
			Ticker:      row.Ticker,
			Exchange:    row.Exchange,
			Quantity:    row.Quantity,
			Price:       row.Price.InexactFloat64(),
			Currency:    row.Currency,
			USDPrice:    row.USDPrice.InexactFloat64(),
			MarketValue: row.MarketValue.InexactFloat64(),
		}
		if row.Allocation.Valid {
			a := row.Allocation.Decimal.Round(2).InexactFloat64()
			pos.Allocation = &a
		}
		resp.Positions[i] = pos
	}

	return resp
}
