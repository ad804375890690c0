package validation

import (
	"strings"

	"github.com/papertrade/stock-trading-backend/internal/api/request"
)

// Credential length limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
	MinPasswordLength = 8
)

// ValidateRegister validates an account registration request.
//
// Required fields:
//   - username: 3-64 characters
//   - email: must look like an email address
//   - password: at least 8 characters
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errors["username"] = "username is required"
	} else if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		errors["username"] = "username must be between 3 and 64 characters"
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors["email"] = "email is required"
	} else if !ValidEmail(email) {
		errors["email"] = "invalid email address"
	}

	if req.Password == "" {
		errors["password"] = "password is required"
	} else if len(req.Password) < MinPasswordLength {
		errors["password"] = "password must be at least 8 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateLogin validates a login request.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
