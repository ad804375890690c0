package handlers

import (
	"errors"
	"net/http"

	"github.com/papertrade/stock-trading-backend/internal/api/middleware"
	"github.com/papertrade/stock-trading-backend/internal/api/request"
	"github.com/papertrade/stock-trading-backend/internal/api/response"
	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/auth"
	"github.com/papertrade/stock-trading-backend/internal/service"
	"github.com/papertrade/stock-trading-backend/internal/validation"
)

// AuthHandler handles HTTP requests for account registration and sessions.
type AuthHandler struct {
	userService *service.UserService
	sessions    *auth.SessionManager
}

// NewAuthHandler creates a new AuthHandler with the provided dependencies.
func NewAuthHandler(userService *service.UserService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// Register handles POST requests to create a new account.
// A successful registration also logs the user in by setting the session cookie.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (username, email, password)
// Response: 201 Created with User
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the username or email is already registered
// Error: 500 Internal Server Error if creation fails
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.userService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) || errors.Is(err, apperrors.ErrEmailTaken) {
			response.RespondError(w, http.StatusConflict, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to register user", err.Error())
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create session", err.Error())
		return
	}
	auth.SetSessionCookie(w, token, h.sessions.TTL())

	response.RespondJSON(w, http.StatusCreated, user)
}

// Login handles POST requests to authenticate and open a session.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with User
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 401 Unauthorized if the credentials are wrong
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create session", err.Error())
		return
	}
	auth.SetSessionCookie(w, token, h.sessions.TTL())

	response.RespondJSON(w, http.StatusOK, user)
}

// Logout handles POST requests to close the current session.
// Always succeeds, whether or not a session was open.
//
// Endpoint: POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	auth.ClearSessionCookie(w)
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Me handles GET requests to return the authenticated user.
//
// Endpoint: GET /api/auth/me
// Response: 200 OK with User
// Error: 401 Unauthorized if no valid session is present
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}
