package request

import "github.com/shopspring/decimal"

type CreateStockRequest struct {
	Ticker            string          `json:"ticker"`
	Name              string          `json:"name"`
	Sector            string          `json:"sector,omitempty"`
	Price             decimal.Decimal `json:"price"`
	SharesOutstanding *int64          `json:"shares_outstanding,omitempty"`
}

type UpdateStockRequest struct {
	Name              *string          `json:"name,omitempty"`
	Sector            *string          `json:"sector,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	SharesOutstanding *int64           `json:"shares_outstanding,omitempty"`
}
