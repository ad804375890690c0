// Package auth issues and verifies the encrypted session tokens carried by
// the session cookie. Tokens are fernet-encrypted and carry only the user ID;
// expiry is enforced by fernet's built-in timestamp check.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fernet/fernet-go"
)

// Cookie names used by the HTTP layer.
const (
	SessionCookie     = "session"
	ChatSessionCookie = "chat_session"
)

// ErrInvalidSession indicates a missing, tampered or expired session token.
var ErrInvalidSession = errors.New("invalid or expired session token")

// SessionManager encrypts user IDs into opaque session tokens and back.
type SessionManager struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// NewSessionManager creates a SessionManager from a base64 fernet key.
// When encodedKey is empty an ephemeral key is generated, which invalidates
// all sessions on restart; fine for development, set SESSION_KEY in production.
func NewSessionManager(encodedKey string, ttl time.Duration) (*SessionManager, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return &SessionManager{keys: []*fernet.Key{&key}, ttl: ttl}, nil
	}

	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}
	return &SessionManager{keys: keys, ttl: ttl}, nil
}

// Issue creates a session token for the given user ID.
func (m *SessionManager) Issue(userID string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(userID), m.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt session token: %w", err)
	}
	return string(token), nil
}

// Verify decrypts a session token and returns the user ID it carries.
func (m *SessionManager) Verify(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), m.ttl, m.keys)
	if msg == nil {
		return "", ErrInvalidSession
	}
	return string(msg), nil
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// SetSessionCookie attaches the session token to the response.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetChatSessionCookie attaches the anonymous chat session ID to the response.
// The chat session ID is an opaque uuid, not a credential, so it is stored
// unencrypted.
func SetChatSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ChatSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
