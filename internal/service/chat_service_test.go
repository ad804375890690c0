package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/service"
	"github.com/papertrade/stock-trading-backend/internal/testutil"
)

// scriptedResponder returns a fixed reply and records what it was asked.
type scriptedResponder struct {
	reply   string
	err     error
	system  string
	history []model.ChatMessage
	message string
}

func (s *scriptedResponder) Respond(_ context.Context, system string, history []model.ChatMessage, message string) (string, error) {
	s.system = system
	s.history = history
	s.message = message
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestSendMessage(t *testing.T) {
	t.Run("persists both turns and returns the reply", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		responder := &scriptedResponder{reply: "A portfolio is a collection of holdings."}
		svc := testutil.NewTestChatService(t, db, responder)

		sessionID := svc.NewSession()
		result, err := svc.SendMessage(context.Background(), "", sessionID, "What is a portfolio?")
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if !result.Success || result.Response != responder.reply {
			t.Errorf("unexpected result: %+v", result)
		}

		history, err := svc.History(sessionID)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("expected both turns stored, got %d messages", len(history))
		}
		if history[0].Role != model.ChatRoleUser || history[1].Role != model.ChatRoleAssistant {
			t.Errorf("turns out of order: %s, %s", history[0].Role, history[1].Role)
		}
	})

	t.Run("safety filter answers without calling the model", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		responder := &scriptedResponder{reply: "should not be used"}
		svc := testutil.NewTestChatService(t, db, responder)

		result, err := svc.SendMessage(context.Background(), "", svc.NewSession(), "Which is the best stock to buy?")
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if !result.Success || !result.Filtered {
			t.Errorf("expected a filtered success, got %+v", result)
		}
		if responder.message != "" {
			t.Error("model was called despite the safety filter")
		}
		if !strings.Contains(result.Response, "can't provide personalized investment advice") {
			t.Errorf("unexpected filter reply: %q", result.Response)
		}
	})

	t.Run("nil responder serves the unconfigured fallback", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChatService(t, db, nil)

		sessionID := svc.NewSession()
		result, err := svc.SendMessage(context.Background(), "", sessionID, "Hello")
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if result.Success {
			t.Error("expected success=false for the unconfigured fallback")
		}
		if !strings.Contains(result.Response, "not configured") {
			t.Errorf("unexpected fallback reply: %q", result.Response)
		}

		// The fallback exchange is still part of the history.
		history, err := svc.History(sessionID)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history) != 2 {
			t.Errorf("expected 2 stored messages, got %d", len(history))
		}
	})

	t.Run("model failure serves the general fallback", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		responder := &scriptedResponder{err: errors.New("boom")}
		svc := testutil.NewTestChatService(t, db, responder)

		result, err := svc.SendMessage(context.Background(), "", svc.NewSession(), "Hello")
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if result.Success {
			t.Error("expected success=false when the model fails")
		}
	})

	t.Run("authenticated users get portfolio context in the system prompt", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		responder := &scriptedResponder{reply: "ok"}
		svc := testutil.NewTestChatService(t, db, responder)

		user := testutil.NewUser().Build(t, db)
		stock := testutil.NewStock().WithTicker("ACME").WithPrice("120").Build(t, db)
		testutil.NewTrade(user.ID, stock).WithQuantity(10).WithPrice("100").Build(t, db)

		if _, err := svc.SendMessage(context.Background(), user.ID, svc.NewSession(), "Summarize my holdings"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}

		if !strings.Contains(responder.system, "ACME") {
			t.Errorf("system prompt lacks the user's holding:\n%s", responder.system)
		}
		if !strings.Contains(responder.system, "Total Portfolio Value: $1200.00") {
			t.Errorf("system prompt lacks the portfolio value:\n%s", responder.system)
		}
	})

	t.Run("history is replayed to the model in order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		responder := &scriptedResponder{reply: "ok"}
		svc := testutil.NewTestChatService(t, db, responder)

		sessionID := svc.NewSession()
		if _, err := svc.SendMessage(context.Background(), "", sessionID, "first"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if _, err := svc.SendMessage(context.Background(), "", sessionID, "second"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}

		if len(responder.history) != 2 {
			t.Fatalf("expected 2 replayed messages, got %d", len(responder.history))
		}
		if responder.history[0].Content != "first" || responder.history[1].Role != model.ChatRoleAssistant {
			t.Errorf("unexpected replayed history: %+v", responder.history)
		}
	})
}

func TestHistory(t *testing.T) {
	t.Run("empty session ID yields an empty history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChatService(t, db, nil)

		messages, err := svc.History("")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(messages) != 0 {
			t.Errorf("expected no messages, got %d", len(messages))
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestChatService(t, db, &scriptedResponder{reply: "ok"})

		first := svc.NewSession()
		second := svc.NewSession()
		if _, err := svc.SendMessage(context.Background(), "", first, "hello"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}

		messages, err := svc.History(second)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(messages) != 0 {
			t.Errorf("second session sees %d foreign messages", len(messages))
		}
	})
}

// Touch the service package so the compiler keeps the interface check honest.
var _ service.Responder = (*scriptedResponder)(nil)
