// Package service implements the business logic of the trading demo:
// account management, catalog maintenance, trade validation, portfolio
// aggregation, price simulation and the assistant conversation flow.
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// PortfolioService derives portfolio state from the trade ledger and the
// current price catalog. Nothing here is persisted; every call recomputes
// from scratch.
type PortfolioService struct {
	tradeRepo *repository.TradeRepository
	stockRepo *repository.StockRepository
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(tradeRepo *repository.TradeRepository, stockRepo *repository.StockRepository) *PortfolioService {
	return &PortfolioService{
		tradeRepo: tradeRepo,
		stockRepo: stockRepo,
	}
}

// GetPortfolio computes the current portfolio for one user. The trade ledger
// and the price catalog load concurrently; aggregation itself is pure.
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID string) (model.Portfolio, error) {
	var (
		trades []model.Trade
		quotes map[string]model.StockQuote
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trades, err = s.tradeRepo.GetTradesByUser(userID)
		return err
	})
	g.Go(func() error {
		var err error
		quotes, err = s.stockRepo.GetQuotes()
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Portfolio{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToComputePortfolio, err)
	}

	positions, summary, err := ComputePortfolio(trades, quotes)
	if err != nil {
		return model.Portfolio{}, err
	}

	return model.Portfolio{Positions: positions, Summary: summary}, nil
}

// runningPosition carries the intermediate state of the fold for one ticker.
type runningPosition struct {
	shares    int64
	totalCost decimal.Decimal
	avgPrice  decimal.Decimal
}

// ComputePortfolio folds a trade ledger into per-ticker positions priced
// against the given quotes.
//
// Per ticker: buys add quantity and quantity*price to the running share count
// and cost basis, sells subtract both at the sell's own execution price.
// Average price is recomputed as cost/shares only while the running share
// count is strictly positive; when a position is fully closed and later
// reopened, the stale average is overwritten on the next buy. Tickers whose
// final share count is zero or negative are dropped from the result.
//
// The result is independent of trade order: a retained ticker ends with a
// positive share count, so its final fold step sets the average from the
// final cost and share totals regardless of how the trades were permuted.
//
// A trade referencing a ticker absent from quotes returns ErrUnknownTicker;
// ledger and catalog are foreign-key linked, so a miss is a bug upstream.
func ComputePortfolio(trades []model.Trade, quotes map[string]model.StockQuote) ([]model.Position, model.PortfolioSummary, error) {
	running := make(map[string]*runningPosition)

	for _, t := range trades {
		if _, ok := quotes[t.Ticker]; !ok {
			return nil, model.PortfolioSummary{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, t.Ticker)
		}

		pos, ok := running[t.Ticker]
		if !ok {
			pos = &runningPosition{}
			running[t.Ticker] = pos
		}

		notional := t.Price.Mul(decimal.NewFromInt(t.Quantity))
		if t.Side == model.TradeSideBuy {
			pos.shares += t.Quantity
			pos.totalCost = pos.totalCost.Add(notional)
		} else {
			pos.shares -= t.Quantity
			pos.totalCost = pos.totalCost.Sub(notional)
		}

		if pos.shares > 0 {
			pos.avgPrice = pos.totalCost.Div(decimal.NewFromInt(pos.shares))
		}
	}

	tickers := make([]string, 0, len(running))
	for ticker, pos := range running {
		if pos.shares > 0 {
			tickers = append(tickers, ticker)
		}
	}
	sort.Strings(tickers)

	positions := []model.Position{}
	summary := model.PortfolioSummary{
		TotalValue:         decimal.Zero,
		TotalCost:          decimal.Zero,
		TotalUnrealizedPnL: decimal.Zero,
	}

	for _, ticker := range tickers {
		pos := running[ticker]
		quote := quotes[ticker]

		currentValue := quote.Price.Mul(decimal.NewFromInt(pos.shares))
		pnl := currentValue.Sub(pos.totalCost)

		var pnlPct float64
		if pos.totalCost.IsPositive() {
			pnlPct, _ = pnl.Div(pos.totalCost).Mul(decimal.NewFromInt(100)).Float64()
		}

		positions = append(positions, model.Position{
			Ticker:               ticker,
			Name:                 quote.Name,
			Shares:               pos.shares,
			TotalCost:            pos.totalCost,
			AvgPrice:             pos.avgPrice,
			CurrentPrice:         quote.Price,
			CurrentValue:         currentValue,
			UnrealizedPnL:        pnl,
			UnrealizedPnLPercent: pnlPct,
		})

		summary.TotalValue = summary.TotalValue.Add(currentValue)
		summary.TotalCost = summary.TotalCost.Add(pos.totalCost)
		summary.TotalUnrealizedPnL = summary.TotalUnrealizedPnL.Add(pnl)
	}

	if summary.TotalCost.IsPositive() {
		summary.TotalUnrealizedPnLPct, _ = summary.TotalUnrealizedPnL.
			Div(summary.TotalCost).
			Mul(decimal.NewFromInt(100)).
			Float64()
	}

	return positions, summary, nil
}
