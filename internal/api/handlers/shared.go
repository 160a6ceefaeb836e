package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/stock-portfolio-tracker/internal/api/response"
	"github.com/ndewijer/stock-portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/stock-portfolio-tracker/internal/validation"
)

// respondServiceError maps an error returned by a service onto a status
// code. message is used for failures that have no more specific mapping.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var verr *validation.Error

	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, apperrors.ErrInvalidQuantity), errors.Is(err, apperrors.ErrInvalidTicker):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, apperrors.ErrHoldingNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrQuoteUnavailable):
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrQuoteUnavailable.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
