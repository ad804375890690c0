package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/papertrade/stock-trading-backend/internal/api/request"
	"github.com/papertrade/stock-trading-backend/internal/api/response"
	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/service"
	"github.com/papertrade/stock-trading-backend/internal/validation"
)

// StockHandler handles HTTP requests for the stock catalog.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// ListStocks handles GET requests to retrieve the catalog, paginated and
// ordered by ticker.
//
// Endpoint: GET /api/stocks?page=1&per_page=20
// Response: 200 OK with StockPage
// Error: 500 Internal Server Error if retrieval fails
func (h *StockHandler) ListStocks(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)

	stocks, err := h.stockService.GetStocks(page, perPage)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// GetStock handles GET requests to retrieve a single stock by ticker.
//
// Endpoint: GET /api/stocks/{ticker}
// Response: 200 OK with Stock
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if retrieval fails
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	stock, err := h.stockService.GetStock(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStock.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// CreateStock handles POST requests to add a stock to the catalog.
//
// Endpoint: POST /api/stocks
// Request Body: CreateStockRequest (ticker, name, sector, price, shares_outstanding)
// Response: 201 Created with Stock
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the ticker already exists
// Error: 500 Internal Server Error if creation fails
func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.CreateStock(req.Ticker, req.Name, req.Sector, req.Price, req.SharesOutstanding)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateTicker) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateTicker.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, stock)
}

// UpdateStock handles PUT requests to modify a stock. Fields absent from the
// body keep their current values; the ticker itself is immutable.
//
// Endpoint: PUT /api/stocks/{ticker}
// Request Body: UpdateStockRequest (all fields optional)
// Response: 200 OK with updated Stock
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the ticker is unknown
// Error: 500 Internal Server Error if update fails
func (h *StockHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.UpdateStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	current, err := h.stockService.GetStock(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStock.Error(), err.Error())
		return
	}

	name := current.Name
	if req.Name != nil {
		name = *req.Name
	}
	sector := current.Sector
	if req.Sector != nil {
		sector = *req.Sector
	}
	price := current.Price
	if req.Price != nil {
		price = *req.Price
	}
	sharesOutstanding := current.SharesOutstanding
	if req.SharesOutstanding != nil {
		sharesOutstanding = req.SharesOutstanding
	}

	stock, err := h.stockService.UpdateStock(ticker, name, sector, price, sharesOutstanding)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// DeleteStock handles DELETE requests to remove a stock from the catalog.
// Stocks referenced by trades cannot be deleted.
//
// Endpoint: DELETE /api/stocks/{ticker}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the ticker is unknown
// Error: 409 Conflict if trades reference the stock
// Error: 500 Internal Server Error if deletion fails
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	if err := h.stockService.DeleteStock(ticker); err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrStockInUse) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrStockInUse.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
