package validation

import (
	"fmt"
	"strings"

	"github.com/papertrade/stock-trading-backend/internal/api/request"
)

// ValidTradeSide contains the allowed trade side values.
var ValidTradeSide = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateCreateTrade validates a trade creation request.
//
// Required fields:
//   - ticker: non-empty
//   - side: must be one of: buy, sell
//   - quantity: must be positive
//   - price: must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	side := strings.ToLower(strings.TrimSpace(req.Side))
	if side == "" {
		errors["side"] = "side is required"
	} else if !ValidTradeSide[side] {
		errors["side"] = fmt.Sprintf("invalid side: %s", req.Side)
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTrade validates a trade update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTrade(req request.UpdateTradeRequest) error {
	errors := make(map[string]string)

	if req.Side != nil {
		side := strings.ToLower(strings.TrimSpace(*req.Side))
		if side == "" {
			errors["side"] = "side is required"
		} else if !ValidTradeSide[side] {
			errors["side"] = fmt.Sprintf("invalid side: %s", *req.Side)
		}
	}

	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price != nil && !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
