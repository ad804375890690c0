// Package middleware provides HTTP middleware for request logging,
// CORS and session authentication.
package middleware

import (
	"context"
	"net/http"

	"github.com/papertrade/stock-trading-backend/internal/api/response"
	"github.com/papertrade/stock-trading-backend/internal/auth"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

type contextKey int

const userContextKey contextKey = iota

// Auth resolves the session cookie into the current user.
type Auth struct {
	sessions *auth.SessionManager
	userRepo *repository.UserRepository
}

// NewAuth creates the session authentication middleware.
func NewAuth(sessions *auth.SessionManager, userRepo *repository.UserRepository) *Auth {
	return &Auth{sessions: sessions, userRepo: userRepo}
}

// WithUser loads the current user into the request context when a valid
// session cookie is present. Requests without a session pass through
// unauthenticated; RequireUser decides whether that is acceptable.
func (a *Auth) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := a.sessions.Verify(cookie.Value)
		if err != nil {
			// Expired or tampered token: treat as anonymous.
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.userRepo.GetUserByID(userID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// ContextWithUser returns a context carrying the authenticated user.
func ContextWithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// RequireUser rejects requests that did not resolve to an authenticated user.
// Must be mounted after WithUser.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			response.RespondError(w, http.StatusUnauthorized, "authentication required", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user stored in the request context.
func CurrentUser(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}
