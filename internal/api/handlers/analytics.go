package handlers

import (
	"net/http"

	"github.com/ndewijer/portfolio-tracker/internal/api/response"
	"github.com/ndewijer/portfolio-tracker/internal/apperrors"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/validation"
)

// AnalyticsHandler serves risk/return metrics and benchmark comparisons.
type AnalyticsHandler struct {
	portfolioService *service.PortfolioService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(portfolioService *service.PortfolioService) *AnalyticsHandler {
	return &AnalyticsHandler{
		portfolioService: portfolioService,
	}
}

// Analytics handles GET requests for CAGR, Sharpe ratio, max drawdown,
// best and worst performers, and the five-year projection.
//
// Endpoint: GET /api/analytics
// Response: 200 OK with model.Analytics
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *AnalyticsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	analytics, err := h.portfolioService.ComputeAnalytics(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, analytics)
}

// Benchmarks handles GET requests comparing portfolio growth with market indices.
//
// Endpoint: GET /api/analytics/benchmarks?range={day|week|month|year|max}
// Response: 200 OK with model.BenchmarkComparison
// Error: 400 Bad Request for an unknown range
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *AnalyticsHandler) Benchmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := validation.ValidateRange(r.URL.Query().Get("range"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRange.Error(), err.Error())
		return
	}

	comparison, err := h.portfolioService.ComputeBenchmarkComparison(r.Context(), userID, rng)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeBenchmarks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, comparison)
}
