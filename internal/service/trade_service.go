package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// TradeService records buy and sell executions against the ledger.
type TradeService struct {
	tradeRepo *repository.TradeRepository
	stockRepo *repository.StockRepository
}

// NewTradeService creates a new TradeService.
func NewTradeService(tradeRepo *repository.TradeRepository, stockRepo *repository.StockRepository) *TradeService {
	return &TradeService{
		tradeRepo: tradeRepo,
		stockRepo: stockRepo,
	}
}

// CreateTrade records a trade. Sells are validated against the user's net
// share count for the stock so the ledger never goes net short through this
// surface.
func (s *TradeService) CreateTrade(userID, ticker, side string, quantity int64, price decimal.Decimal) (model.Trade, error) {
	side = strings.ToLower(strings.TrimSpace(side))

	stock, err := s.stockRepo.GetStockByTicker(NormalizeTicker(ticker))
	if err != nil {
		return model.Trade{}, err
	}

	if side == model.TradeSideSell {
		if err := s.checkShares(userID, stock.ID, quantity, ""); err != nil {
			return model.Trade{}, err
		}
	}

	trade := model.Trade{
		ID:        uuid.New().String(),
		UserID:    userID,
		StockID:   stock.ID,
		Ticker:    stock.Ticker,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}

	if err := s.tradeRepo.CreateTrade(trade); err != nil {
		return model.Trade{}, err
	}

	return trade, nil
}

// GetTrades retrieves one page of a user's trade history, newest first.
func (s *TradeService) GetTrades(userID string, page, perPage int) (model.TradePage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	trades, total, err := s.tradeRepo.GetTradesPage(userID, page, perPage)
	if err != nil {
		return model.TradePage{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTrades, err)
	}

	responses := make([]model.TradeResponse, 0, len(trades))
	for _, t := range trades {
		responses = append(responses, model.NewTradeResponse(t))
	}

	return model.TradePage{
		Trades:      responses,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
		PerPage:     perPage,
	}, nil
}

// GetTrade retrieves a single trade owned by the user.
func (s *TradeService) GetTrade(tradeID, userID string) (model.Trade, error) {
	return s.tradeRepo.GetTrade(tradeID, userID)
}

// UpdateTrade replaces the side, quantity and price of an existing trade.
// When the result is a sell, validation sums the rest of the ledger with the
// edited trade excluded, then applies the replacement quantity.
func (s *TradeService) UpdateTrade(tradeID, userID, side string, quantity int64, price decimal.Decimal) (model.Trade, error) {
	side = strings.ToLower(strings.TrimSpace(side))

	trade, err := s.tradeRepo.GetTrade(tradeID, userID)
	if err != nil {
		return model.Trade{}, err
	}

	if side == model.TradeSideSell {
		if err := s.checkShares(userID, trade.StockID, quantity, trade.ID); err != nil {
			return model.Trade{}, err
		}
	}

	trade.Side = side
	trade.Quantity = quantity
	trade.Price = price

	if err := s.tradeRepo.UpdateTrade(trade); err != nil {
		return model.Trade{}, err
	}

	return trade, nil
}

// DeleteTrade removes a trade owned by the user.
func (s *TradeService) DeleteTrade(tradeID, userID string) error {
	return s.tradeRepo.DeleteTrade(tradeID, userID)
}

// checkShares verifies that selling quantity shares would not take the user's
// net holding below zero. The held count goes into the error so the API can
// surface it.
func (s *TradeService) checkShares(userID, stockID string, quantity int64, excludeTradeID string) error {
	held, err := s.tradeRepo.NetShares(userID, stockID, excludeTradeID)
	if err != nil {
		return err
	}
	if quantity > held {
		return fmt.Errorf("%w: you hold %d shares", apperrors.ErrInsufficientShares, held)
	}
	return nil
}
