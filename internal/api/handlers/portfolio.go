package handlers

import (
	"net/http"

	"github.com/papertrade/stock-trading-backend/internal/api/middleware"
	"github.com/papertrade/stock-trading-backend/internal/api/response"
	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the derived portfolio views.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	dashboardService *service.DashboardService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(portfolioService *service.PortfolioService, dashboardService *service.DashboardService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		dashboardService: dashboardService,
	}
}

// GetPortfolio handles GET requests to compute the user's current portfolio.
// Positions and summary are derived from the full trade ledger on every call.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with Portfolio
// Error: 401 Unauthorized if no valid session is present
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// GetDashboard handles GET requests for the user's overview: portfolio,
// recently added stocks and recent trades.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with Dashboard
// Error: 401 Unauthorized if no valid session is present
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}
