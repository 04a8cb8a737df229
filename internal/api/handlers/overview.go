package handlers

import (
	"net/http"

	"github.com/ndewijer/portfolio-tracker/internal/api/response"
	"github.com/ndewijer/portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/validation"
)

// OverviewHandler serves the current-state snapshot and the value timeline.
type OverviewHandler struct {
	portfolioService *service.PortfolioService
}

// NewOverviewHandler creates a new OverviewHandler.
func NewOverviewHandler(portfolioService *service.PortfolioService) *OverviewHandler {
	return &OverviewHandler{
		portfolioService: portfolioService,
	}
}

// Overview handles GET requests for the portfolio snapshot: totals, per-category
// gains, allocation, every holding, and the five largest positions.
//
// Endpoint: GET /api/overview
// Response: 200 OK with model.Overview
// Error: 401 Unauthorized without a valid token (middleware)
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *OverviewHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	overview, err := h.portfolioService.ComputeOverview(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeOverview.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}

// Performance handles GET requests for the daily portfolio value timeline.
//
// Endpoint: GET /api/overview/performance?range={day|week|month|year|max}
// Response: 200 OK with array of {date, portfolioValue}
// Error: 400 Bad Request for an unknown range
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *OverviewHandler) Performance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := validation.ValidateRange(r.URL.Query().Get("range"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRange.Error(), err.Error())
		return
	}

	timeline, err := h.portfolioService.ComputePerformanceTimeline(r.Context(), userID, rng)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, timeline)
}
