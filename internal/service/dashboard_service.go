package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// Dashboard bundles the landing-page data for one user. The embedded
// Portfolio flattens into the payload next to the recent panels.
type Dashboard struct {
	model.Portfolio
	RecentStocks []model.Stock         `json:"recent_stocks"`
	RecentTrades []model.TradeResponse `json:"recent_trades"`
}

// DashboardService composes the per-user overview out of the portfolio,
// catalog and trade surfaces.
type DashboardService struct {
	portfolioSvc *PortfolioService
	stockRepo    *repository.StockRepository
	tradeRepo    *repository.TradeRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(portfolioSvc *PortfolioService, stockRepo *repository.StockRepository, tradeRepo *repository.TradeRepository) *DashboardService {
	return &DashboardService{
		portfolioSvc: portfolioSvc,
		stockRepo:    stockRepo,
		tradeRepo:    tradeRepo,
	}
}

// GetDashboard loads the three dashboard panels concurrently.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (Dashboard, error) {
	var dash Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash.Portfolio, err = s.portfolioSvc.GetPortfolio(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		dash.RecentStocks, err = s.stockRepo.GetRecentStocks(5)
		return err
	})
	g.Go(func() error {
		trades, err := s.tradeRepo.GetRecentTrades(userID, 5)
		if err != nil {
			return err
		}
		dash.RecentTrades = make([]model.TradeResponse, 0, len(trades))
		for _, t := range trades {
			dash.RecentTrades = append(dash.RecentTrades, model.NewTradeResponse(t))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveDashboard, err)
	}

	return dash, nil
}
