package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/api/request"
)

func fieldError(t *testing.T, err error, field string) {
	t.Helper()
	verr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *validation.Error, got %T: %v", err, err)
	}
	if _, present := verr.Fields[field]; !present {
		t.Errorf("expected an error for field %q, got %v", field, verr.Fields)
	}
}

func TestValidateRegister(t *testing.T) {
	valid := request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}

	if err := ValidateRegister(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	t.Run("username too short", func(t *testing.T) {
		req := valid
		req.Username = "ab"
		fieldError(t, ValidateRegister(req), "username")
	})

	t.Run("missing email", func(t *testing.T) {
		req := valid
		req.Email = ""
		fieldError(t, ValidateRegister(req), "email")
	})

	t.Run("malformed email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		fieldError(t, ValidateRegister(req), "email")
	})

	t.Run("short password", func(t *testing.T) {
		req := valid
		req.Password = "short"
		fieldError(t, ValidateRegister(req), "password")
	})
}

func TestValidateCreateStock(t *testing.T) {
	valid := request.CreateStockRequest{
		Ticker: "ACME",
		Name:   "Acme Corp",
		Price:  decimal.NewFromInt(100),
	}

	if err := ValidateCreateStock(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	t.Run("bad ticker", func(t *testing.T) {
		req := valid
		req.Ticker = "123!"
		fieldError(t, ValidateCreateStock(req), "ticker")
	})

	t.Run("non-positive price", func(t *testing.T) {
		req := valid
		req.Price = decimal.Zero
		fieldError(t, ValidateCreateStock(req), "price")
	})
}

func TestValidateCreateTrade(t *testing.T) {
	valid := request.CreateTradeRequest{
		Ticker:   "ACME",
		Side:     "buy",
		Quantity: 10,
		Price:    decimal.NewFromInt(100),
	}

	if err := ValidateCreateTrade(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	t.Run("side is case insensitive", func(t *testing.T) {
		req := valid
		req.Side = "SELL"
		if err := ValidateCreateTrade(req); err != nil {
			t.Errorf("uppercase side rejected: %v", err)
		}
	})

	t.Run("unknown side", func(t *testing.T) {
		req := valid
		req.Side = "hold"
		fieldError(t, ValidateCreateTrade(req), "side")
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		req := valid
		req.Quantity = 0
		fieldError(t, ValidateCreateTrade(req), "quantity")
	})
}

func TestValidateChat(t *testing.T) {
	if err := ValidateChat(request.ChatRequest{Message: "What is a stock?"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	t.Run("blank message", func(t *testing.T) {
		fieldError(t, ValidateChat(request.ChatRequest{Message: "   "}), "message")
	})

	t.Run("over length message", func(t *testing.T) {
		fieldError(t, ValidateChat(request.ChatRequest{Message: strings.Repeat("a", 1001)}), "message")
	})
}
