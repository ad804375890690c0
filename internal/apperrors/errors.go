package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or username does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrStockNotFound indicates that a stock with the given ticker does not exist.
	ErrStockNotFound = errors.New("stock not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist
	// or is not owned by the requesting user.
	ErrTradeNotFound = errors.New("trade not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrUsernameTaken indicates that the requested username is already registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken indicates that the requested email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt. It deliberately
	// does not distinguish between an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInsufficientShares indicates that a sell trade cannot be completed
	// because the user does not hold enough net shares of the stock.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrDuplicateTicker indicates that a stock with the same ticker already exists.
	ErrDuplicateTicker = errors.New("stock with this ticker already exists")

	// ErrStockInUse indicates that a stock cannot be deleted because trades reference it.
	ErrStockInUse = errors.New("stock has associated trades")
)

// Data integrity errors signal a bug in a collaborator rather than bad user input.
var (
	// ErrUnknownTicker indicates that a trade references a ticker missing from
	// the price catalog. Referential integrity between trades and stocks is a
	// precondition of portfolio aggregation, so this propagates to the caller
	// instead of defaulting a price.
	ErrUnknownTicker = errors.New("trade references unknown ticker")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, not missing entities or validation issues.
var (
	ErrFailedToRetrieveStocks    = errors.New("failed to retrieve stocks")
	ErrFailedToRetrieveStock     = errors.New("failed to retrieve stock")
	ErrFailedToRetrieveTrades    = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveTrade     = errors.New("failed to retrieve trade")
	ErrFailedToComputePortfolio  = errors.New("failed to compute portfolio")
	ErrFailedToRetrieveMessages  = errors.New("failed to retrieve chat history")
	ErrFailedToSimulatePrices    = errors.New("failed to simulate price changes")
	ErrFailedToRetrieveDashboard = errors.New("failed to retrieve dashboard data")
)
