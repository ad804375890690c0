package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/papertrade/stock-trading-backend/internal/repository"
	"github.com/papertrade/stock-trading-backend/internal/service"
)

func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	return service.NewUserService(repository.NewUserRepository(db))
}

func NewTestStockService(t *testing.T, db *sql.DB) *service.StockService {
	t.Helper()

	return service.NewStockService(repository.NewStockRepository(db))
}

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	return service.NewTradeService(
		repository.NewTradeRepository(db),
		repository.NewStockRepository(db),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewTradeRepository(db),
		repository.NewStockRepository(db),
	)
}

// NewTestSimulationService uses a fixed seed so runs are reproducible.
func NewTestSimulationService(t *testing.T, db *sql.DB) *service.SimulationService {
	t.Helper()

	return service.NewSimulationService(
		repository.NewStockRepository(db),
		rand.NewSource(1),
	)
}

// NewTestChatService builds a chat service with the given responder;
// nil exercises the fallback path.
func NewTestChatService(t *testing.T, db *sql.DB, responder service.Responder) *service.ChatService {
	t.Helper()

	return service.NewChatService(
		repository.NewChatRepository(db),
		repository.NewStockRepository(db),
		repository.NewTradeRepository(db),
		NewTestPortfolioService(t, db),
		responder,
	)
}

// MakeID generates a UUID string for use in tests.
//
// Example:
//
//	id := testutil.MakeID()
func MakeID() string {
	return uuid.New().String()
}
