package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/testutil"
)

func TestCreateTrade(t *testing.T) {
	t.Run("buy records a trade with the canonical ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		user := testutil.NewUser().Build(t, db)
		testutil.NewStock().WithTicker("ACME").WithPrice("100").Build(t, db)

		trade, err := svc.CreateTrade(user.ID, "acme", "BUY", 10, decimal.NewFromInt(100))
		if err != nil {
			t.Fatalf("CreateTrade failed: %v", err)
		}
		if trade.Ticker != "ACME" {
			t.Errorf("ticker = %s, want ACME", trade.Ticker)
		}
		if trade.Side != model.TradeSideBuy {
			t.Errorf("side = %s, want buy", trade.Side)
		}
	})

	t.Run("unknown ticker is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		user := testutil.NewUser().Build(t, db)

		_, err := svc.CreateTrade(user.ID, "GHOST", "buy", 1, decimal.NewFromInt(10))
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("sell beyond held shares is rejected with the held count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		user := testutil.NewUser().Build(t, db)
		stock := testutil.NewStock().WithTicker("ACME").WithPrice("100").Build(t, db)
		testutil.NewTrade(user.ID, stock).WithQuantity(5).Build(t, db)

		_, err := svc.CreateTrade(user.ID, "ACME", "sell", 6, decimal.NewFromInt(100))
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("expected ErrInsufficientShares, got %v", err)
		}
		if !strings.Contains(err.Error(), "5") {
			t.Errorf("error %q does not report the held count", err)
		}
	})

	t.Run("sell up to the held count succeeds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		user := testutil.NewUser().Build(t, db)
		stock := testutil.NewStock().WithTicker("ACME").WithPrice("100").Build(t, db)
		testutil.NewTrade(user.ID, stock).WithQuantity(5).Build(t, db)

		if _, err := svc.CreateTrade(user.ID, "ACME", "sell", 5, decimal.NewFromInt(110)); err != nil {
			t.Fatalf("CreateTrade failed: %v", err)
		}
	})
}

func TestUpdateTrade(t *testing.T) {
	t.Run("edit excludes the edited trade from the sell check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		user := testutil.NewUser().Build(t, db)
		stock := testutil.NewStock().WithTicker("ACME").WithPrice("100").Build(t, db)
		testutil.NewTrade(user.ID, stock).WithQuantity(10).Build(t, db)
		sell := testutil.NewTrade(user.ID, stock).Sell().WithQuantity(4).Build(t, db)

		// Raising the sell to 10 is fine against the remaining buy of 10.
		updated, err := svc.UpdateTrade(sell.ID, user.ID, "sell", 10, decimal.NewFromInt(120))
		if err != nil {
			t.Fatalf("UpdateTrade failed: %v", err)
		}
		if updated.Quantity != 10 {
			t.Errorf("quantity = %d, want 10", updated.Quantity)
		}

		// Raising it further is not.
		_, err = svc.UpdateTrade(sell.ID, user.ID, "sell", 11, decimal.NewFromInt(120))
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("expected ErrInsufficientShares, got %v", err)
		}
	})

	t.Run("another user's trade is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		owner := testutil.NewUser().Build(t, db)
		other := testutil.NewUser().Build(t, db)
		stock := testutil.NewStock().Build(t, db)
		trade := testutil.NewTrade(owner.ID, stock).Build(t, db)

		_, err := svc.UpdateTrade(trade.ID, other.ID, "buy", 1, decimal.NewFromInt(10))
		if !errors.Is(err, apperrors.ErrTradeNotFound) {
			t.Fatalf("expected ErrTradeNotFound, got %v", err)
		}
	})
}

func TestGetTrades(t *testing.T) {
	t.Run("pages are newest first with totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		user := testutil.NewUser().Build(t, db)
		stock := testutil.NewStock().Build(t, db)
		for i := 0; i < 5; i++ {
			testutil.NewTrade(user.ID, stock).Build(t, db)
		}

		page, err := svc.GetTrades(user.ID, 1, 2)
		if err != nil {
			t.Fatalf("GetTrades failed: %v", err)
		}
		if page.Total != 5 || page.Pages != 3 || len(page.Trades) != 2 {
			t.Errorf("page = total %d, pages %d, len %d; want 5, 3, 2", page.Total, page.Pages, len(page.Trades))
		}

		// Notional value is derived, not stored.
		want := page.Trades[0].Price.Mul(decimal.NewFromInt(page.Trades[0].Quantity))
		if !page.Trades[0].TotalValue.Equal(want) {
			t.Errorf("total_value = %s, want %s", page.Trades[0].TotalValue, want)
		}
	})
}

func TestDeleteTrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTradeService(t, db)

	user := testutil.NewUser().Build(t, db)
	stock := testutil.NewStock().Build(t, db)
	trade := testutil.NewTrade(user.ID, stock).Build(t, db)

	if err := svc.DeleteTrade(trade.ID, user.ID); err != nil {
		t.Fatalf("DeleteTrade failed: %v", err)
	}

	if err := svc.DeleteTrade(trade.ID, user.ID); !errors.Is(err, apperrors.ErrTradeNotFound) {
		t.Fatalf("expected ErrTradeNotFound on second delete, got %v", err)
	}
}
