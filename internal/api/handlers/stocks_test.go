package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/testutil"
)

func setupStockHandler(t *testing.T) (*StockHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewStockHandler(testutil.NewTestStockService(t, db)), db
}

func TestStockHandler_CreateStock(t *testing.T) {
	t.Run("creates and canonicalizes the ticker", func(t *testing.T) {
		handler, _ := setupStockHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/stocks", map[string]any{
			"ticker": "acme",
			"name":   "Acme Corp",
			"price":  100,
		})
		w := httptest.NewRecorder()

		handler.CreateStock(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		stock := testutil.DecodeJSON[model.Stock](t, w)
		if stock.Ticker != "ACME" {
			t.Errorf("ticker = %q, want ACME", stock.Ticker)
		}
	})

	t.Run("duplicate ticker returns 409", func(t *testing.T) {
		handler, db := setupStockHandler(t)
		testutil.NewStock().WithTicker("ACME").Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/stocks", map[string]any{
			"ticker": "ACME",
			"name":   "Acme Again",
			"price":  90,
		})
		w := httptest.NewRecorder()

		handler.CreateStock(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestStockHandler_ListStocks(t *testing.T) {
	handler, db := setupStockHandler(t)

	for _, ticker := range []string{"BBB", "AAA"} {
		testutil.NewStock().WithTicker(ticker).Build(t, db)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stocks?page=1&per_page=10", nil)
	w := httptest.NewRecorder()

	handler.ListStocks(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	page := testutil.DecodeJSON[model.StockPage](t, w)
	if page.Total != 2 || page.Stocks[0].Ticker != "AAA" {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestStockHandler_DeleteStock(t *testing.T) {
	t.Run("stock with trades returns 409", func(t *testing.T) {
		handler, db := setupStockHandler(t)

		user := testutil.NewUser().Build(t, db)
		stock := testutil.NewStock().WithTicker("ACME").Build(t, db)
		testutil.NewTrade(user.ID, stock).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/stocks/ACME",
			map[string]string{"ticker": "ACME"})
		w := httptest.NewRecorder()

		handler.DeleteStock(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown ticker returns 404", func(t *testing.T) {
		handler, _ := setupStockHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/stocks/GHOST",
			map[string]string{"ticker": "GHOST"})
		w := httptest.NewRecorder()

		handler.DeleteStock(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
