package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
)

func quote(name, price string) model.StockQuote {
	return model.StockQuote{Name: name, Price: decimal.RequireFromString(price)}
}

func trade(ticker, side string, quantity int64, price string) model.Trade {
	return model.Trade{
		ID:        ticker + "-" + side,
		Ticker:    ticker,
		Side:      side,
		Quantity:  quantity,
		Price:     decimal.RequireFromString(price),
		Timestamp: time.Now().UTC(),
	}
}

func decimalEquals(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestComputePortfolio(t *testing.T) {
	t.Run("empty ledger yields empty portfolio", func(t *testing.T) {
		positions, summary, err := ComputePortfolio(nil, map[string]model.StockQuote{})
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}
		if len(positions) != 0 {
			t.Errorf("expected no positions, got %d", len(positions))
		}
		decimalEquals(t, "summary.TotalValue", summary.TotalValue, "0")
		decimalEquals(t, "summary.TotalCost", summary.TotalCost, "0")
		if summary.TotalUnrealizedPnLPct != 0 {
			t.Errorf("summary pnl percent = %v, want 0", summary.TotalUnrealizedPnLPct)
		}
	})

	t.Run("single buy", func(t *testing.T) {
		quotes := map[string]model.StockQuote{"ACME": quote("Acme Corp", "120")}
		trades := []model.Trade{trade("ACME", "buy", 10, "100")}

		positions, summary, err := ComputePortfolio(trades, quotes)
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("expected 1 position, got %d", len(positions))
		}

		p := positions[0]
		if p.Shares != 10 {
			t.Errorf("shares = %d, want 10", p.Shares)
		}
		decimalEquals(t, "total_cost", p.TotalCost, "1000")
		decimalEquals(t, "avg_price", p.AvgPrice, "100")
		decimalEquals(t, "current_value", p.CurrentValue, "1200")
		decimalEquals(t, "unrealized_pnl", p.UnrealizedPnL, "200")
		if p.UnrealizedPnLPercent != 20 {
			t.Errorf("pnl percent = %v, want 20", p.UnrealizedPnLPercent)
		}
		decimalEquals(t, "summary.TotalValue", summary.TotalValue, "1200")
		decimalEquals(t, "summary.TotalCost", summary.TotalCost, "1000")
		if summary.TotalUnrealizedPnLPct != 20 {
			t.Errorf("summary pnl percent = %v, want 20", summary.TotalUnrealizedPnLPct)
		}
	})

	t.Run("full sell closes the position", func(t *testing.T) {
		quotes := map[string]model.StockQuote{"ACME": quote("Acme Corp", "150")}
		trades := []model.Trade{
			trade("ACME", "buy", 10, "100"),
			trade("ACME", "sell", 10, "130"),
		}

		positions, summary, err := ComputePortfolio(trades, quotes)
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}
		if len(positions) != 0 {
			t.Fatalf("expected closed position to be dropped, got %d positions", len(positions))
		}
		decimalEquals(t, "summary.TotalValue", summary.TotalValue, "0")
	})

	t.Run("partial sell reduces cost at the sell price", func(t *testing.T) {
		quotes := map[string]model.StockQuote{"ACME": quote("Acme Corp", "120")}
		trades := []model.Trade{
			trade("ACME", "buy", 10, "100"),
			trade("ACME", "sell", 4, "120"),
		}

		positions, _, err := ComputePortfolio(trades, quotes)
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("expected 1 position, got %d", len(positions))
		}

		// 1000 - 4*120 = 520 over 6 shares.
		p := positions[0]
		if p.Shares != 6 {
			t.Errorf("shares = %d, want 6", p.Shares)
		}
		decimalEquals(t, "total_cost", p.TotalCost, "520")
		decimalEquals(t, "avg_price rounded", p.AvgPrice.Round(2), "86.67")
		decimalEquals(t, "current_value", p.CurrentValue, "720")
		decimalEquals(t, "unrealized_pnl", p.UnrealizedPnL, "200")
	})

	t.Run("result is independent of trade order", func(t *testing.T) {
		quotes := map[string]model.StockQuote{"ACME": quote("Acme Corp", "120")}
		base := []model.Trade{
			trade("ACME", "buy", 10, "100"),
			trade("ACME", "sell", 4, "120"),
			trade("ACME", "buy", 2, "110"),
		}

		permutations := [][]int{
			{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
		}

		reference, _, err := ComputePortfolio(base, quotes)
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}

		for _, perm := range permutations {
			shuffled := make([]model.Trade, len(base))
			for i, j := range perm {
				shuffled[i] = base[j]
			}

			positions, _, err := ComputePortfolio(shuffled, quotes)
			if err != nil {
				t.Fatalf("ComputePortfolio failed for permutation %v: %v", perm, err)
			}
			if len(positions) != 1 {
				t.Fatalf("permutation %v: expected 1 position, got %d", perm, len(positions))
			}

			got, want := positions[0], reference[0]
			if got.Shares != want.Shares ||
				!got.TotalCost.Equal(want.TotalCost) ||
				!got.AvgPrice.Equal(want.AvgPrice) {
				t.Errorf("permutation %v: position %+v differs from reference %+v", perm, got, want)
			}
		}
	})

	t.Run("multiple tickers aggregate into the summary", func(t *testing.T) {
		quotes := map[string]model.StockQuote{
			"AAA": quote("Alpha", "50"),
			"BBB": quote("Beta", "200"),
		}
		trades := []model.Trade{
			trade("BBB", "buy", 5, "180"),
			trade("AAA", "buy", 20, "40"),
		}

		positions, summary, err := ComputePortfolio(trades, quotes)
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}
		if len(positions) != 2 {
			t.Fatalf("expected 2 positions, got %d", len(positions))
		}

		// Positions come back sorted by ticker.
		if positions[0].Ticker != "AAA" || positions[1].Ticker != "BBB" {
			t.Errorf("positions out of order: %s, %s", positions[0].Ticker, positions[1].Ticker)
		}

		// 20*50 + 5*200 against a basis of 800 + 900.
		decimalEquals(t, "summary.TotalValue", summary.TotalValue, "2000")
		decimalEquals(t, "summary.TotalCost", summary.TotalCost, "1700")
		decimalEquals(t, "summary.TotalUnrealizedPnL", summary.TotalUnrealizedPnL, "300")
	})

	t.Run("unknown ticker fails the computation", func(t *testing.T) {
		trades := []model.Trade{trade("GHOST", "buy", 1, "10")}

		_, _, err := ComputePortfolio(trades, map[string]model.StockQuote{})
		if !errors.Is(err, apperrors.ErrUnknownTicker) {
			t.Fatalf("expected ErrUnknownTicker, got %v", err)
		}
	})

	t.Run("zero cost basis leaves percentage at zero", func(t *testing.T) {
		quotes := map[string]model.StockQuote{"FREE": quote("Freebie", "10")}
		trades := []model.Trade{
			trade("FREE", "buy", 5, "100"),
			// Cost drops to 500-500=0 with 1 share left.
			trade("FREE", "sell", 4, "125"),
		}

		positions, summary, err := ComputePortfolio(trades, quotes)
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("expected 1 position, got %d", len(positions))
		}
		if positions[0].UnrealizedPnLPercent != 0 {
			t.Errorf("pnl percent = %v, want 0 for zero cost basis", positions[0].UnrealizedPnLPercent)
		}
		if summary.TotalUnrealizedPnLPct != 0 {
			t.Errorf("summary pnl percent = %v, want 0 for zero cost basis", summary.TotalUnrealizedPnLPct)
		}
	})

	t.Run("reopened position forgets the stale average", func(t *testing.T) {
		quotes := map[string]model.StockQuote{"ACME": quote("Acme Corp", "100")}
		trades := []model.Trade{
			trade("ACME", "buy", 10, "100"),
			trade("ACME", "sell", 10, "90"), // closes at a loss, cost now 100
		}
		reopen := trade("ACME", "buy", 5, "80")
		reopen.ID = "reopen"
		trades = append(trades, reopen)

		positions, _, err := ComputePortfolio(trades, quotes)
		if err != nil {
			t.Fatalf("ComputePortfolio failed: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("expected 1 position, got %d", len(positions))
		}

		// Residual cost from the closed round trip carries into the new lot:
		// 1000 - 900 + 400 = 500 over 5 shares.
		p := positions[0]
		decimalEquals(t, "total_cost", p.TotalCost, "500")
		decimalEquals(t, "avg_price", p.AvgPrice, "100")
	})
}
