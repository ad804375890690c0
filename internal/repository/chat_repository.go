package repository

import (
	"database/sql"
	"fmt"

	"github.com/papertrade/stock-trading-backend/internal/model"
)

// ChatRepository provides data access methods for the chat_message table.
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new ChatRepository with the provided database connection.
func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateMessage inserts one conversation turn.
func (s *ChatRepository) CreateMessage(msg model.ChatMessage) error {
	query := `
		INSERT INTO chat_message (id, user_id, session_id, role, content, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	var userID any
	if msg.UserID != "" {
		userID = msg.UserID
	}

	_, err := s.db.Exec(query,
		msg.ID,
		userID,
		msg.SessionID,
		msg.Role,
		msg.Content,
		FormatTime(msg.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// GetSessionMessages retrieves up to limit messages for one session in
// chronological order.
func (s *ChatRepository) GetSessionMessages(sessionID string, limit int) ([]model.ChatMessage, error) {
	query := `
		SELECT id, user_id, session_id, role, content, timestamp
		FROM chat_message
		WHERE session_id = ?
		ORDER BY timestamp ASC
		LIMIT ?
	`
	rows, err := s.db.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat_message table: %w", err)
	}
	defer rows.Close()

	return s.scanMessages(rows)
}

// GetRecentMessages retrieves the last limit messages for one session,
// returned in chronological order. Used to replay conversation history to
// the model.
func (s *ChatRepository) GetRecentMessages(sessionID string, limit int) ([]model.ChatMessage, error) {
	query := `
		SELECT id, user_id, session_id, role, content, timestamp
		FROM (
			SELECT id, user_id, session_id, role, content, timestamp
			FROM chat_message
			WHERE session_id = ?
			ORDER BY timestamp DESC
			LIMIT ?
		)
		ORDER BY timestamp ASC
	`
	rows, err := s.db.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat_message table: %w", err)
	}
	defer rows.Close()

	return s.scanMessages(rows)
}

func (s *ChatRepository) scanMessages(rows *sql.Rows) ([]model.ChatMessage, error) {
	messages := []model.ChatMessage{}

	for rows.Next() {
		var m model.ChatMessage
		var userID sql.NullString
		var timestampStr string

		err := rows.Scan(
			&m.ID,
			&userID,
			&m.SessionID,
			&m.Role,
			&m.Content,
			&timestampStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat_message table results: %w", err)
		}

		if userID.Valid {
			m.UserID = userID.String
		}

		m.Timestamp, err = ParseTime(timestampStr)
		if err != nil {
			return nil, err
		}

		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat_message table: %w", err)
	}

	return messages, nil
}
