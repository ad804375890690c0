package validation

import (
	"regexp"
	"strings"

	"github.com/papertrade/stock-trading-backend/internal/api/request"
)

var tickerPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.]{0,9}$`)

// ValidateCreateStock validates a stock creation request.
//
// Required fields:
//   - ticker: 1-10 characters, letters, digits and dots, leading letter
//   - name: non-empty
//   - price: must be positive
//
// Optional fields:
//   - shares_outstanding: must be positive if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateStock(req request.CreateStockRequest) error {
	errors := make(map[string]string)

	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		errors["ticker"] = "ticker is required"
	} else if !tickerPattern.MatchString(ticker) {
		errors["ticker"] = "invalid ticker symbol"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if req.SharesOutstanding != nil && *req.SharesOutstanding <= 0 {
		errors["shares_outstanding"] = "shares_outstanding must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateStock validates a stock update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateStock(req request.UpdateStockRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Price != nil && !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if req.SharesOutstanding != nil && *req.SharesOutstanding <= 0 {
		errors["shares_outstanding"] = "shares_outstanding must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
