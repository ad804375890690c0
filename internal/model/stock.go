package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock represents a catalog entry. Ticker is stored uppercase and is unique.
// Price is the latest quoted market price, mutated only by the price simulator
// and the stock update endpoint.
type Stock struct {
	ID                string          `json:"id"`
	Ticker            string          `json:"ticker"`
	Name              string          `json:"name"`
	Sector            string          `json:"sector,omitempty"`
	Price             decimal.Decimal `json:"price"`
	SharesOutstanding *int64          `json:"shares_outstanding,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// StockPage is a paginated slice of the stock catalog.
type StockPage struct {
	Stocks      []Stock `json:"stocks"`
	Total       int     `json:"total"`
	Pages       int     `json:"pages"`
	CurrentPage int     `json:"current_page"`
	PerPage     int     `json:"per_page"`
}
