package model

import "github.com/shopspring/decimal"

// StockQuote is the slice of catalog data the portfolio aggregation needs:
// display name and current market price for one ticker.
type StockQuote struct {
	Name  string
	Price decimal.Decimal
}

// Position is a user's current net holding in one ticker, derived by folding
// all of their trades for that ticker. Positions are recomputed on every
// request and never persisted.
type Position struct {
	Ticker               string          `json:"ticker"`
	Name                 string          `json:"name"`
	Shares               int64           `json:"shares"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	AvgPrice             decimal.Decimal `json:"avg_price"`
	CurrentPrice         decimal.Decimal `json:"current_price"`
	CurrentValue         decimal.Decimal `json:"current_value"`
	UnrealizedPnL        decimal.Decimal `json:"unrealized_pnl"`
	UnrealizedPnLPercent float64         `json:"unrealized_pnl_percent"`
}

// PortfolioSummary aggregates the retained positions of one portfolio.
type PortfolioSummary struct {
	TotalValue            decimal.Decimal `json:"total_value"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	TotalUnrealizedPnL    decimal.Decimal `json:"total_unrealized_pnl"`
	TotalUnrealizedPnLPct float64         `json:"total_unrealized_pnl_percent"`
}

// Portfolio is the full aggregation result returned by the portfolio surfaces.
type Portfolio struct {
	Positions []Position       `json:"portfolio"`
	Summary   PortfolioSummary `json:"summary"`
}
