package service

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// PriceChange reports one simulated move in the catalog.
type PriceChange struct {
	Ticker        string          `json:"ticker"`
	OldPrice      decimal.Decimal `json:"old_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
	ChangePercent float64         `json:"change_percent"`
}

// SimulationResult is the outcome of one simulation run.
type SimulationResult struct {
	UpdatedCount int           `json:"updated_count"`
	Changes      []PriceChange `json:"changes"`
}

// SimulationService mutates catalog prices to generate market movement.
// Prices never drop below one cent.
type SimulationService struct {
	stockRepo *repository.StockRepository
	rng       *rand.Rand
}

// NewSimulationService creates a new SimulationService seeded from src.
// Tests pass a fixed seed for reproducible runs.
func NewSimulationService(stockRepo *repository.StockRepository, src rand.Source) *SimulationService {
	return &SimulationService{
		stockRepo: stockRepo,
		rng:       rand.New(src),
	}
}

// SimulateRandom applies an independent uniform move in [-volatility, +volatility]
// to each stock. maxStocks limits how many stocks move; zero means all.
// Volatility must lie in (0, 1].
func (s *SimulationService) SimulateRandom(volatility float64, maxStocks int) (SimulationResult, error) {
	if volatility <= 0 || volatility > 1 {
		return SimulationResult{}, fmt.Errorf("volatility must be in (0, 1], got %v", volatility)
	}
	return s.run(maxStocks, func() float64 {
		return (s.rng.Float64()*2 - 1) * volatility
	})
}

// SimulateCrash drops every stock by crashPercent (0.15 = a 15% drop).
// crashPercent must lie in (0, 1].
func (s *SimulationService) SimulateCrash(crashPercent float64) (SimulationResult, error) {
	if crashPercent <= 0 || crashPercent > 1 {
		return SimulationResult{}, fmt.Errorf("crash_percent must be in (0, 1], got %v", crashPercent)
	}
	return s.run(0, func() float64 { return -crashPercent })
}

// SimulateRally lifts every stock by rallyPercent (0.10 = a 10% gain).
// rallyPercent must lie in (0, 1].
func (s *SimulationService) SimulateRally(rallyPercent float64) (SimulationResult, error) {
	if rallyPercent <= 0 || rallyPercent > 1 {
		return SimulationResult{}, fmt.Errorf("rally_percent must be in (0, 1], got %v", rallyPercent)
	}
	return s.run(0, func() float64 { return rallyPercent })
}

// run applies nextChange to each stock, rounds the result to two decimal
// places and persists the new prices.
func (s *SimulationService) run(maxStocks int, nextChange func() float64) (SimulationResult, error) {
	stocks, err := s.stockRepo.GetAllStocks(maxStocks)
	if err != nil {
		return SimulationResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToSimulatePrices, err)
	}

	minPrice := decimal.NewFromFloat(0.01)
	result := SimulationResult{Changes: []PriceChange{}}

	for _, stock := range stocks {
		change := nextChange()
		newPrice := stock.Price.
			Mul(decimal.NewFromFloat(1 + change)).
			Round(2)
		if newPrice.LessThan(minPrice) {
			newPrice = minPrice
		}

		if err := s.stockRepo.UpdatePrice(stock.ID, newPrice); err != nil {
			return SimulationResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToSimulatePrices, err)
		}

		result.Changes = append(result.Changes, PriceChange{
			Ticker:        stock.Ticker,
			OldPrice:      stock.Price,
			NewPrice:      newPrice,
			ChangePercent: change * 100,
		})
		result.UpdatedCount++
	}

	log.Printf("price simulation updated %d stocks", result.UpdatedCount)
	return result, nil
}
