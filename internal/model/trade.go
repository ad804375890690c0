package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade side constants. Trades are an append-only ledger; a trade is never
// mutated by portfolio calculations.
const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"
)

// Trade represents a single buy or sell execution for one user and one stock.
type Trade struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	StockID   string          `json:"stock_id"`
	Ticker    string          `json:"ticker"`
	Side      string          `json:"side"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// TradeResponse enriches a trade with its notional value for API responses.
type TradeResponse struct {
	Trade
	TotalValue decimal.Decimal `json:"total_value"`
}

// NewTradeResponse computes the notional (quantity x price) for a trade.
func NewTradeResponse(t Trade) TradeResponse {
	return TradeResponse{
		Trade:      t,
		TotalValue: t.Price.Mul(decimal.NewFromInt(t.Quantity)),
	}
}

// TradePage is a paginated slice of a user's trade history, newest first.
type TradePage struct {
	Trades      []TradeResponse `json:"trades"`
	Total       int             `json:"total"`
	Pages       int             `json:"pages"`
	CurrentPage int             `json:"current_page"`
	PerPage     int             `json:"per_page"`
}
