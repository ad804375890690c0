package handlers

import (
	"errors"
	"net/http"

	"github.com/papertrade/stock-trading-backend/internal/api/request"
	"github.com/papertrade/stock-trading-backend/internal/api/response"
	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/service"
)

// Simulation parameter defaults.
const (
	defaultVolatility   = 0.02
	defaultCrashPercent = 0.15
	defaultRallyPercent = 0.10
)

// AdminHandler handles HTTP requests for the market simulation endpoints.
type AdminHandler struct {
	simulationService *service.SimulationService
}

// NewAdminHandler creates a new AdminHandler with the provided service dependency.
func NewAdminHandler(simulationService *service.SimulationService) *AdminHandler {
	return &AdminHandler{simulationService: simulationService}
}

// SimulateRandom handles POST requests to apply random price movement across
// the catalog.
//
// Endpoint: POST /api/admin/simulate/random
// Request Body: SimulateRequest (volatility, max_stocks; both optional)
// Response: 200 OK with SimulationResult
// Error: 400 Bad Request if the request body or parameters are invalid
// Error: 401 Unauthorized if no valid session is present
// Error: 500 Internal Server Error if simulation fails
func (h *AdminHandler) SimulateRandom(w http.ResponseWriter, r *http.Request) {
	req, err := parseSimulateRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	volatility := defaultVolatility
	if req.Volatility != nil {
		volatility = *req.Volatility
	}
	maxStocks := 0
	if req.MaxStocks != nil {
		maxStocks = *req.MaxStocks
	}

	result, err := h.simulationService.SimulateRandom(volatility, maxStocks)
	h.respond(w, result, err)
}

// SimulateCrash handles POST requests to drop every price in the catalog.
//
// Endpoint: POST /api/admin/simulate/crash
// Request Body: SimulateRequest (crash_percent; optional)
// Response: 200 OK with SimulationResult
// Error: 400 Bad Request if the request body or parameters are invalid
// Error: 401 Unauthorized if no valid session is present
// Error: 500 Internal Server Error if simulation fails
func (h *AdminHandler) SimulateCrash(w http.ResponseWriter, r *http.Request) {
	req, err := parseSimulateRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	crashPercent := defaultCrashPercent
	if req.CrashPercent != nil {
		crashPercent = *req.CrashPercent
	}

	result, err := h.simulationService.SimulateCrash(crashPercent)
	h.respond(w, result, err)
}

// SimulateRally handles POST requests to lift every price in the catalog.
//
// Endpoint: POST /api/admin/simulate/rally
// Request Body: SimulateRequest (rally_percent; optional)
// Response: 200 OK with SimulationResult
// Error: 400 Bad Request if the request body or parameters are invalid
// Error: 401 Unauthorized if no valid session is present
// Error: 500 Internal Server Error if simulation fails
func (h *AdminHandler) SimulateRally(w http.ResponseWriter, r *http.Request) {
	req, err := parseSimulateRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rallyPercent := defaultRallyPercent
	if req.RallyPercent != nil {
		rallyPercent = *req.RallyPercent
	}

	result, err := h.simulationService.SimulateRally(rallyPercent)
	h.respond(w, result, err)
}

func (h *AdminHandler) respond(w http.ResponseWriter, result service.SimulationResult, err error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrFailedToSimulatePrices) {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSimulatePrices.Error(), err.Error())
			return
		}
		// Anything else is a parameter out of range.
		response.RespondError(w, http.StatusBadRequest, "invalid simulation parameters", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// parseSimulateRequest tolerates an empty body; all parameters are optional.
func parseSimulateRequest(r *http.Request) (request.SimulateRequest, error) {
	if r.ContentLength == 0 {
		return request.SimulateRequest{}, nil
	}
	return parseJSON[request.SimulateRequest](r)
}
