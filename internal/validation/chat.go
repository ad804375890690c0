package validation

import (
	"strings"

	"github.com/papertrade/stock-trading-backend/internal/api/request"
	"github.com/papertrade/stock-trading-backend/internal/service"
)

// ValidateChat validates an assistant message request.
//
// Required fields:
//   - message: non-empty after trimming, at most 1000 characters
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateChat(req request.ChatRequest) error {
	errors := make(map[string]string)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		errors["message"] = "message is required"
	} else if len(message) > service.MaxMessageLength {
		errors["message"] = "message is too long (max 1000 characters)"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
