package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user record.
func (s *UserRepository) CreateUser(user model.User) error {
	query := `
		INSERT INTO user (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		FormatTime(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by primary key.
// Returns apperrors.ErrUserNotFound if no such user exists.
func (s *UserRepository) GetUserByID(userID string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM user
		WHERE id = ?
	`
	return s.scanUser(s.db.QueryRow(query, userID))
}

// GetUserByUsername retrieves a user by username.
// Returns apperrors.ErrUserNotFound if no such user exists.
func (s *UserRepository) GetUserByUsername(username string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM user
		WHERE username = ?
	`
	return s.scanUser(s.db.QueryRow(query, username))
}

// UsernameExists reports whether a user with the given username exists.
func (s *UserRepository) UsernameExists(username string) (bool, error) {
	return s.exists("SELECT COUNT(1) FROM user WHERE username = ?", username)
}

// EmailExists reports whether a user with the given email exists.
func (s *UserRepository) EmailExists(email string) (bool, error) {
	return s.exists("SELECT COUNT(1) FROM user WHERE email = ?", email)
}

func (s *UserRepository) exists(query string, arg string) (bool, error) {
	var count int
	if err := s.db.QueryRow(query, arg).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query user table: %w", err)
	}
	return count > 0, nil
}

func (s *UserRepository) scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}
