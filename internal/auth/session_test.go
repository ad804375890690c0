package auth

import (
	"testing"
	"time"

	"github.com/fernet/fernet-go"
)

func TestSessionRoundTrip(t *testing.T) {
	m, err := NewSessionManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("user ID = %q, want user-123", userID)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m, err := NewSessionManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Verify(token + "x"); err != ErrInvalidSession {
		t.Errorf("tampered token: got %v, want ErrInvalidSession", err)
	}
	if _, err := m.Verify("garbage"); err != ErrInvalidSession {
		t.Errorf("garbage token: got %v, want ErrInvalidSession", err)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer, err := NewSessionManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	verifier, err := NewSessionManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err != ErrInvalidSession {
		t.Errorf("foreign key: got %v, want ErrInvalidSession", err)
	}
}

func TestNewSessionManagerDecodesConfiguredKey(t *testing.T) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	m, err := NewSessionManager(key.Encode(), time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := m.Verify(token); err != nil {
		t.Errorf("Verify failed for configured key: %v", err)
	}
}

func TestNewSessionManagerRejectsBadKey(t *testing.T) {
	if _, err := NewSessionManager("not base64!", time.Hour); err == nil {
		t.Error("expected an error for an undecodable key")
	}
}
