package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
)

// StockRepository provides data access methods for the stock catalog table.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// CreateStock inserts a new stock record.
func (s *StockRepository) CreateStock(stock model.Stock) error {
	query := `
		INSERT INTO stock (id, ticker, name, sector, price, shares_outstanding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		stock.ID,
		stock.Ticker,
		stock.Name,
		stock.Sector,
		stock.Price.String(),
		stock.SharesOutstanding,
		FormatTime(stock.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock: %w", err)
	}
	return nil
}

// GetStockByTicker retrieves a stock by its ticker symbol.
// Returns apperrors.ErrStockNotFound if no such stock exists.
func (s *StockRepository) GetStockByTicker(ticker string) (model.Stock, error) {
	query := `
		SELECT id, ticker, name, sector, price, shares_outstanding, created_at
		FROM stock
		WHERE ticker = ?
	`
	return s.scanStock(s.db.QueryRow(query, ticker))
}

// GetStocks retrieves one page of the catalog ordered by ticker, plus the
// total number of stocks for pagination metadata.
func (s *StockRepository) GetStocks(page, perPage int) ([]model.Stock, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM stock").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stock table: %w", err)
	}

	query := `
		SELECT id, ticker, name, sector, price, shares_outstanding, created_at
		FROM stock
		ORDER BY ticker ASC
		LIMIT ? OFFSET ?
	`
	rows, err := s.db.Query(query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks, err := s.scanStocks(rows)
	if err != nil {
		return nil, 0, err
	}

	return stocks, total, nil
}

// GetRecentStocks retrieves the most recently added stocks.
func (s *StockRepository) GetRecentStocks(limit int) ([]model.Stock, error) {
	query := `
		SELECT id, ticker, name, sector, price, shares_outstanding, created_at
		FROM stock
		ORDER BY created_at DESC, ticker ASC
		LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	return s.scanStocks(rows)
}

// GetAllStocks retrieves the full catalog ordered by ticker.
// Used by the price simulator and the chat context builder.
func (s *StockRepository) GetAllStocks(limit int) ([]model.Stock, error) {
	query := `
		SELECT id, ticker, name, sector, price, shares_outstanding, created_at
		FROM stock
		ORDER BY ticker ASC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	return s.scanStocks(rows)
}

// GetQuotes retrieves the current price catalog keyed by ticker.
// This is the price lookup consumed by portfolio aggregation.
func (s *StockRepository) GetQuotes() (map[string]model.StockQuote, error) {
	rows, err := s.db.Query("SELECT ticker, name, price FROM stock")
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	quotes := make(map[string]model.StockQuote)
	for rows.Next() {
		var ticker, name, priceStr string
		if err := rows.Scan(&ticker, &name, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		price, err := ParseDecimal(priceStr)
		if err != nil {
			return nil, err
		}
		quotes[ticker] = model.StockQuote{Name: name, Price: price}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return quotes, nil
}

// UpdateStock updates the mutable fields of a stock identified by ticker.
// Returns apperrors.ErrStockNotFound if no such stock exists.
func (s *StockRepository) UpdateStock(stock model.Stock) error {
	query := `
		UPDATE stock
		SET name = ?, sector = ?, price = ?, shares_outstanding = ?
		WHERE ticker = ?
	`
	result, err := s.db.Exec(query,
		stock.Name,
		stock.Sector,
		stock.Price.String(),
		stock.SharesOutstanding,
		stock.Ticker,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	return s.requireRow(result)
}

// UpdatePrice updates only the quoted price of a stock. Used by the simulator.
func (s *StockRepository) UpdatePrice(stockID string, price decimal.Decimal) error {
	result, err := s.db.Exec("UPDATE stock SET price = ? WHERE id = ?", price.String(), stockID)
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}
	return s.requireRow(result)
}

// DeleteStock removes a stock by ticker.
// Returns apperrors.ErrStockNotFound if no such stock exists.
func (s *StockRepository) DeleteStock(ticker string) error {
	result, err := s.db.Exec("DELETE FROM stock WHERE ticker = ?", ticker)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	return s.requireRow(result)
}

// CountTrades returns the number of trades referencing a stock.
func (s *StockRepository) CountTrades(stockID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM trade WHERE stock_id = ?", stockID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades for stock: %w", err)
	}
	return count, nil
}

func (s *StockRepository) requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStockNotFound
	}
	return nil
}

func (s *StockRepository) scanStock(row *sql.Row) (model.Stock, error) {
	var st model.Stock
	var priceStr, createdAtStr string
	var sector sql.NullString
	var sharesOutstanding sql.NullInt64

	err := row.Scan(
		&st.ID,
		&st.Ticker,
		&st.Name,
		&sector,
		&priceStr,
		&sharesOutstanding,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to scan stock table results: %w", err)
	}

	return s.buildStock(st, sector, priceStr, sharesOutstanding, createdAtStr)
}

func (s *StockRepository) scanStocks(rows *sql.Rows) ([]model.Stock, error) {
	stocks := []model.Stock{}

	for rows.Next() {
		var st model.Stock
		var priceStr, createdAtStr string
		var sector sql.NullString
		var sharesOutstanding sql.NullInt64

		err := rows.Scan(
			&st.ID,
			&st.Ticker,
			&st.Name,
			&sector,
			&priceStr,
			&sharesOutstanding,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}

		st, err = s.buildStock(st, sector, priceStr, sharesOutstanding, createdAtStr)
		if err != nil {
			return nil, err
		}

		stocks = append(stocks, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}

func (s *StockRepository) buildStock(st model.Stock, sector sql.NullString, priceStr string, sharesOutstanding sql.NullInt64, createdAtStr string) (model.Stock, error) {
	var err error

	if sector.Valid {
		st.Sector = sector.String
	}
	if sharesOutstanding.Valid {
		st.SharesOutstanding = &sharesOutstanding.Int64
	}

	st.Price, err = ParseDecimal(priceStr)
	if err != nil {
		return model.Stock{}, err
	}

	st.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Stock{}, err
	}

	return st, nil
}
