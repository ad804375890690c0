package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/papertrade/stock-trading-backend/internal/auth"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/service"
	"github.com/papertrade/stock-trading-backend/internal/testutil"
)

func chatSessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.ChatSessionCookie {
			return cookie
		}
	}
	return nil
}

func TestChatHandler_SendMessage(t *testing.T) {
	t.Run("unconfigured assistant answers 200 with success=false", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewChatHandler(testutil.NewTestChatService(t, db, nil))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "What is a stock?",
		})
		w := httptest.NewRecorder()

		handler.SendMessage(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		result := testutil.DecodeJSON[service.ChatResult](t, w)
		if result.Success {
			t.Error("expected success=false for the unconfigured fallback")
		}
		if chatSessionCookie(w) == nil {
			t.Error("expected a chat session cookie to be issued")
		}
	})

	t.Run("empty message returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewChatHandler(testutil.NewTestChatService(t, db, nil))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "  ",
		})
		w := httptest.NewRecorder()

		handler.SendMessage(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("existing chat session cookie is reused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChatService(t, db, nil)
		handler := NewChatHandler(svc)

		sessionID := svc.NewSession()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "hello",
		})
		req.AddCookie(&http.Cookie{Name: auth.ChatSessionCookie, Value: sessionID})
		w := httptest.NewRecorder()

		handler.SendMessage(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		history, err := svc.History(sessionID)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history) != 2 {
			t.Errorf("expected the exchange under the existing session, got %d messages", len(history))
		}
	})
}

func TestChatHandler_History(t *testing.T) {
	t.Run("no session yields an empty list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewChatHandler(testutil.NewTestChatService(t, db, nil))

		req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		body := testutil.DecodeJSON[map[string][]model.ChatMessage](t, w)
		if len(body["messages"]) != 0 {
			t.Errorf("expected no messages, got %d", len(body["messages"]))
		}
	})
}

func TestChatHandler_Clear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewChatHandler(testutil.NewTestChatService(t, db, nil))

	w := httptest.NewRecorder()
	handler.Clear(w, httptest.NewRequest(http.MethodPost, "/api/chat/clear", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if chatSessionCookie(w) == nil {
		t.Error("expected a fresh chat session cookie")
	}
}
