package request

import "github.com/shopspring/decimal"

type CreateTradeRequest struct {
	Ticker   string          `json:"ticker"`
	Side     string          `json:"side"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type UpdateTradeRequest struct {
	Side     *string          `json:"side,omitempty"`
	Quantity *int64           `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}
