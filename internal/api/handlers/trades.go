package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/papertrade/stock-trading-backend/internal/api/middleware"
	"github.com/papertrade/stock-trading-backend/internal/api/request"
	"github.com/papertrade/stock-trading-backend/internal/api/response"
	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/service"
	"github.com/papertrade/stock-trading-backend/internal/validation"
)

// TradeHandler handles HTTP requests for the trade ledger. All endpoints
// operate on the authenticated user's own trades.
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// ListTrades handles GET requests to retrieve the user's trade history,
// newest first, paginated.
//
// Endpoint: GET /api/trades?page=1&per_page=20
// Response: 200 OK with TradePage
// Error: 401 Unauthorized if no valid session is present
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)

	trades, err := h.tradeService.GetTrades(user.ID, page, perPage)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// GetTrade handles GET requests to retrieve one of the user's trades.
//
// Endpoint: GET /api/trades/{uuid}
// Response: 200 OK with TradeResponse
// Error: 400 Bad Request if the trade ID is not a valid UUID
// Error: 401 Unauthorized if no valid session is present
// Error: 404 Not Found if the trade does not exist or belongs to another user
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())
	tradeID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(tradeID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid trade ID", err.Error())
		return
	}

	trade, err := h.tradeService.GetTrade(tradeID, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrade.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, model.NewTradeResponse(trade))
}

// CreateTrade handles POST requests to record a buy or sell.
// Sells are validated against the user's net holding of the stock.
//
// Endpoint: POST /api/trades
// Request Body: CreateTradeRequest (ticker, side, quantity, price)
// Response: 201 Created with TradeResponse
// Error: 400 Bad Request if validation fails, the request body is invalid,
// or the user holds too few shares to sell
// Error: 401 Unauthorized if no valid session is present
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if creation fails
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	req, err := parseJSON[request.CreateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.CreateTrade(user.ID, req.Ticker, req.Side, req.Quantity, req.Price)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrInsufficientShares) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientShares.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, model.NewTradeResponse(trade))
}

// UpdateTrade handles PUT requests to modify a trade. Fields absent from the
// body keep their current values. When the result is a sell, the ledger minus
// the edited trade must still cover the new quantity.
//
// Endpoint: PUT /api/trades/{uuid}
// Request Body: UpdateTradeRequest (all fields optional)
// Response: 200 OK with updated TradeResponse
// Error: 400 Bad Request if the trade ID is invalid, validation fails,
// or the user holds too few shares to sell
// Error: 401 Unauthorized if no valid session is present
// Error: 404 Not Found if the trade does not exist or belongs to another user
// Error: 500 Internal Server Error if update fails
func (h *TradeHandler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())
	tradeID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(tradeID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid trade ID", err.Error())
		return
	}

	req, err := parseJSON[request.UpdateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	current, err := h.tradeService.GetTrade(tradeID, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrade.Error(), err.Error())
		return
	}

	side := current.Side
	if req.Side != nil {
		side = *req.Side
	}
	quantity := current.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	price := current.Price
	if req.Price != nil {
		price = *req.Price
	}

	trade, err := h.tradeService.UpdateTrade(tradeID, user.ID, side, quantity, price)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrInsufficientShares) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientShares.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, model.NewTradeResponse(trade))
}

// DeleteTrade handles DELETE requests to remove one of the user's trades.
//
// Endpoint: DELETE /api/trades/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the trade ID is not a valid UUID
// Error: 401 Unauthorized if no valid session is present
// Error: 404 Not Found if the trade does not exist or belongs to another user
// Error: 500 Internal Server Error if deletion fails
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())
	tradeID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(tradeID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid trade ID", err.Error())
		return
	}

	if err := h.tradeService.DeleteTrade(tradeID, user.ID); err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
