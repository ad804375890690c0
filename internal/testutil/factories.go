package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	user := testutil.NewUser().WithUsername("alice").Build(t, db)
type UserBuilder struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	id := MakeID()
	return &UserBuilder{
		ID:           id,
		Username:     "user-" + id[:8],
		Email:        "user-" + id[:8] + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// Build inserts the user and returns the model.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	user := model.User{
		ID:           b.ID,
		Username:     b.Username,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repository.NewUserRepository(db).CreateUser(user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// StockBuilder provides a fluent interface for creating test stocks.
//
// Example usage:
//
//	stock := testutil.NewStock().WithTicker("ACME").WithPrice("120").Build(t, db)
type StockBuilder struct {
	ID     string
	Ticker string
	Name   string
	Sector string
	Price  decimal.Decimal
}

// NewStock creates a StockBuilder with sensible defaults.
func NewStock() *StockBuilder {
	id := MakeID()
	return &StockBuilder{
		ID:     id,
		Ticker: "TST" + id[:4],
		Name:   "Test Stock",
		Sector: "Technology",
		Price:  decimal.NewFromInt(100),
	}
}

// WithTicker sets a custom ticker.
func (b *StockBuilder) WithTicker(ticker string) *StockBuilder {
	b.Ticker = ticker
	return b
}

// WithName sets a custom name.
func (b *StockBuilder) WithName(name string) *StockBuilder {
	b.Name = name
	return b
}

// WithPrice sets a custom price from its decimal string form.
func (b *StockBuilder) WithPrice(price string) *StockBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// Build inserts the stock and returns the model.
func (b *StockBuilder) Build(t *testing.T, db *sql.DB) model.Stock {
	t.Helper()

	stock := model.Stock{
		ID:        b.ID,
		Ticker:    b.Ticker,
		Name:      b.Name,
		Sector:    b.Sector,
		Price:     b.Price,
		CreatedAt: time.Now().UTC(),
	}
	if err := repository.NewStockRepository(db).CreateStock(stock); err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}
	return stock
}

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	trade := testutil.NewTrade(user.ID, stock).
//	    Sell().
//	    WithQuantity(4).
//	    WithPrice("120").
//	    Build(t, db)
type TradeBuilder struct {
	ID        string
	UserID    string
	Stock     model.Stock
	Side      string
	Quantity  int64
	Price     decimal.Decimal
	Timestamp time.Time
}

// NewTrade creates a TradeBuilder defaulting to a buy of 10 shares at the
// stock's current price.
func NewTrade(userID string, stock model.Stock) *TradeBuilder {
	return &TradeBuilder{
		ID:        MakeID(),
		UserID:    userID,
		Stock:     stock,
		Side:      model.TradeSideBuy,
		Quantity:  10,
		Price:     stock.Price,
		Timestamp: time.Now().UTC(),
	}
}

// Buy marks the trade as a buy.
func (b *TradeBuilder) Buy() *TradeBuilder {
	b.Side = model.TradeSideBuy
	return b
}

// Sell marks the trade as a sell.
func (b *TradeBuilder) Sell() *TradeBuilder {
	b.Side = model.TradeSideSell
	return b
}

// WithQuantity sets a custom quantity.
func (b *TradeBuilder) WithQuantity(quantity int64) *TradeBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets a custom execution price from its decimal string form.
func (b *TradeBuilder) WithPrice(price string) *TradeBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// WithTimestamp sets a custom execution time.
func (b *TradeBuilder) WithTimestamp(ts time.Time) *TradeBuilder {
	b.Timestamp = ts
	return b
}

// Build inserts the trade and returns the model.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	trade := model.Trade{
		ID:        b.ID,
		UserID:    b.UserID,
		StockID:   b.Stock.ID,
		Ticker:    b.Stock.Ticker,
		Side:      b.Side,
		Quantity:  b.Quantity,
		Price:     b.Price,
		Timestamp: b.Timestamp,
	}
	if err := repository.NewTradeRepository(db).CreateTrade(trade); err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}
	return trade
}
