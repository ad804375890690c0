package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// StockService manages the stock catalog.
type StockService struct {
	stockRepo *repository.StockRepository
}

// NewStockService creates a new StockService.
func NewStockService(stockRepo *repository.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// NormalizeTicker canonicalizes a ticker symbol for storage and lookup.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// CreateStock adds a stock to the catalog. The ticker is uppercased before
// storage; duplicates return ErrDuplicateTicker.
func (s *StockService) CreateStock(ticker, name, sector string, price decimal.Decimal, sharesOutstanding *int64) (model.Stock, error) {
	ticker = NormalizeTicker(ticker)

	_, err := s.stockRepo.GetStockByTicker(ticker)
	if err == nil {
		return model.Stock{}, apperrors.ErrDuplicateTicker
	}
	if !errors.Is(err, apperrors.ErrStockNotFound) {
		return model.Stock{}, err
	}

	stock := model.Stock{
		ID:                uuid.New().String(),
		Ticker:            ticker,
		Name:              name,
		Sector:            sector,
		Price:             price,
		SharesOutstanding: sharesOutstanding,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.stockRepo.CreateStock(stock); err != nil {
		return model.Stock{}, err
	}

	return stock, nil
}

// GetStock retrieves one stock by ticker.
func (s *StockService) GetStock(ticker string) (model.Stock, error) {
	return s.stockRepo.GetStockByTicker(NormalizeTicker(ticker))
}

// GetStocks retrieves one page of the catalog ordered by ticker.
func (s *StockService) GetStocks(page, perPage int) (model.StockPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	stocks, total, err := s.stockRepo.GetStocks(page, perPage)
	if err != nil {
		return model.StockPage{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveStocks, err)
	}

	return model.StockPage{
		Stocks:      stocks,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
		PerPage:     perPage,
	}, nil
}

// GetRecentStocks retrieves the most recently added catalog entries.
func (s *StockService) GetRecentStocks(limit int) ([]model.Stock, error) {
	stocks, err := s.stockRepo.GetRecentStocks(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveStocks, err)
	}
	return stocks, nil
}

// UpdateStock replaces the mutable fields of a stock. Ticker itself is
// immutable; it identifies the row.
func (s *StockService) UpdateStock(ticker, name, sector string, price decimal.Decimal, sharesOutstanding *int64) (model.Stock, error) {
	ticker = NormalizeTicker(ticker)

	stock, err := s.stockRepo.GetStockByTicker(ticker)
	if err != nil {
		return model.Stock{}, err
	}

	stock.Name = name
	stock.Sector = sector
	stock.Price = price
	stock.SharesOutstanding = sharesOutstanding

	if err := s.stockRepo.UpdateStock(stock); err != nil {
		return model.Stock{}, err
	}

	return stock, nil
}

// DeleteStock removes a stock from the catalog. Stocks referenced by trades
// cannot be deleted; doing so would orphan ledger entries.
func (s *StockService) DeleteStock(ticker string) error {
	ticker = NormalizeTicker(ticker)

	stock, err := s.stockRepo.GetStockByTicker(ticker)
	if err != nil {
		return err
	}

	count, err := s.stockRepo.CountTrades(stock.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrStockInUse
	}

	return s.stockRepo.DeleteStock(ticker)
}

func pageCount(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
