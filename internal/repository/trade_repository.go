package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
)

// TradeRepository provides data access methods for the trade ledger table.
// Trades are append-only from the aggregator's point of view; edit and delete
// exist only as demo conveniences on the trade-entry surface.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

const tradeColumns = `
	t.id, t.user_id, t.stock_id, s.ticker, t.side, t.quantity, t.price, t.timestamp
`

// CreateTrade inserts a new trade record.
func (s *TradeRepository) CreateTrade(trade model.Trade) error {
	query := `
		INSERT INTO trade (id, user_id, stock_id, side, quantity, price, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		trade.ID,
		trade.UserID,
		trade.StockID,
		trade.Side,
		trade.Quantity,
		trade.Price.String(),
		FormatTime(trade.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// GetTradesByUser retrieves the complete trade ledger for one user, joined
// with the stock ticker. The full set is required: portfolio aggregation over
// a partial ledger would be wrong.
func (s *TradeRepository) GetTradesByUser(userID string) ([]model.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade t
		JOIN stock s ON t.stock_id = s.id
		WHERE t.user_id = ?
	`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	return s.scanTrades(rows)
}

// GetTradesPage retrieves one page of a user's trades, newest first, plus the
// total number of trades for pagination metadata.
func (s *TradeRepository) GetTradesPage(userID string, page, perPage int) ([]model.Trade, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM trade WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trade table: %w", err)
	}

	query := `
		SELECT ` + tradeColumns + `
		FROM trade t
		JOIN stock s ON t.stock_id = s.id
		WHERE t.user_id = ?
		ORDER BY t.timestamp DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.db.Query(query, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades, err := s.scanTrades(rows)
	if err != nil {
		return nil, 0, err
	}

	return trades, total, nil
}

// GetRecentTrades retrieves a user's most recent trades.
func (s *TradeRepository) GetRecentTrades(userID string, limit int) ([]model.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade t
		JOIN stock s ON t.stock_id = s.id
		WHERE t.user_id = ?
		ORDER BY t.timestamp DESC
		LIMIT ?
	`
	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	return s.scanTrades(rows)
}

// GetTrade retrieves a single trade owned by the given user.
// Returns apperrors.ErrTradeNotFound if it does not exist or belongs to
// another user; ownership is deliberately indistinguishable from absence.
func (s *TradeRepository) GetTrade(tradeID, userID string) (model.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade t
		JOIN stock s ON t.stock_id = s.id
		WHERE t.id = ? AND t.user_id = ?
	`
	row := s.db.QueryRow(query, tradeID, userID)

	var t model.Trade
	var priceStr, timestampStr string
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.StockID,
		&t.Ticker,
		&t.Side,
		&t.Quantity,
		&priceStr,
		&timestampStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}
	if err != nil {
		return model.Trade{}, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	return s.buildTrade(t, priceStr, timestampStr)
}

// UpdateTrade updates the side, quantity and price of an existing trade.
func (s *TradeRepository) UpdateTrade(trade model.Trade) error {
	query := `
		UPDATE trade
		SET side = ?, quantity = ?, price = ?
		WHERE id = ? AND user_id = ?
	`
	result, err := s.db.Exec(query,
		trade.Side,
		trade.Quantity,
		trade.Price.String(),
		trade.ID,
		trade.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	return s.requireRow(result)
}

// DeleteTrade removes a trade owned by the given user.
func (s *TradeRepository) DeleteTrade(tradeID, userID string) error {
	result, err := s.db.Exec("DELETE FROM trade WHERE id = ? AND user_id = ?", tradeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return s.requireRow(result)
}

// NetShares sums a user's signed share count for one stock (buys positive,
// sells negative). excludeTradeID, when non-empty, leaves one trade out of the
// sum; trade edits use this to validate the replacement against the rest of
// the ledger.
func (s *TradeRepository) NetShares(userID, stockID, excludeTradeID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN side = 'buy' THEN quantity ELSE -quantity END), 0)
		FROM trade
		WHERE user_id = ? AND stock_id = ?
	`
	args := []any{userID, stockID}

	if excludeTradeID != "" {
		query += " AND id != ?"
		args = append(args, excludeTradeID)
	}

	var net int64
	if err := s.db.QueryRow(query, args...).Scan(&net); err != nil {
		return 0, fmt.Errorf("failed to sum net shares: %w", err)
	}
	return net, nil
}

func (s *TradeRepository) requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

func (s *TradeRepository) scanTrades(rows *sql.Rows) ([]model.Trade, error) {
	trades := []model.Trade{}

	for rows.Next() {
		var t model.Trade
		var priceStr, timestampStr string

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.StockID,
			&t.Ticker,
			&t.Side,
			&t.Quantity,
			&priceStr,
			&timestampStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t, err = s.buildTrade(t, priceStr, timestampStr)
		if err != nil {
			return nil, err
		}

		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

func (s *TradeRepository) buildTrade(t model.Trade, priceStr, timestampStr string) (model.Trade, error) {
	var err error

	t.Price, err = ParseDecimal(priceStr)
	if err != nil {
		return model.Trade{}, err
	}

	t.Timestamp, err = ParseTime(timestampStr)
	if err != nil {
		return model.Trade{}, err
	}

	return t, nil
}
