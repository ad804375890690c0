package handlers

import (
	"net/http"

	"github.com/papertrade/stock-trading-backend/internal/api/middleware"
	"github.com/papertrade/stock-trading-backend/internal/api/request"
	"github.com/papertrade/stock-trading-backend/internal/api/response"
	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/auth"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/service"
	"github.com/papertrade/stock-trading-backend/internal/validation"
)

// ChatHandler handles HTTP requests for the assistant. Conversations are
// scoped to a chat session cookie, independent of login state; an
// authenticated user additionally gets their portfolio injected as context.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new ChatHandler with the provided service dependency.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage handles POST requests to exchange one message with the assistant.
// A chat session cookie is issued if none is present. The reply carries
// success=false when the assistant answered with a fallback; the HTTP status
// stays 200 because the exchange itself completed.
//
// Endpoint: POST /api/chat
// Request Body: ChatRequest (message, max 1000 characters)
// Response: 200 OK with ChatResult
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if persistence fails
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ChatRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateChat(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	sessionID := h.sessionID(w, r)

	var userID string
	if user, ok := middleware.CurrentUser(r.Context()); ok {
		userID = user.ID
	}

	result, err := h.chatService.SendMessage(r.Context(), userID, sessionID, req.Message)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to process message", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// History handles GET requests to load the current session's conversation.
// Without a chat session cookie the history is empty.
//
// Endpoint: GET /api/chat/history
// Response: 200 OK with {"messages": [ChatMessage]}
// Error: 500 Internal Server Error if retrieval fails
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if cookie, err := r.Cookie(auth.ChatSessionCookie); err == nil {
		sessionID = cookie.Value
	}

	messages, err := h.chatService.History(sessionID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveMessages.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string][]model.ChatMessage{"messages": messages})
}

// Clear handles POST requests to start a fresh conversation. The session ID
// rotates; previous messages stay stored but become unreachable.
//
// Endpoint: POST /api/chat/clear
// Response: 200 OK with {"success": true}
func (h *ChatHandler) Clear(w http.ResponseWriter, _ *http.Request) {
	auth.SetChatSessionCookie(w, h.chatService.NewSession())
	response.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// sessionID returns the chat session from the cookie, issuing a new one when
// absent.
func (h *ChatHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(auth.ChatSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sessionID := h.chatService.NewSession()
	auth.SetChatSessionCookie(w, sessionID)
	return sessionID
}
