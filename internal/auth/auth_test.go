package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestService() *TokenService {
	return New(Config{
		Secret:   "test-secret-at-least-sixteen-bytes",
		Issuer:   "tunestack",
		Audience: "tunestack-users",
		TTL:      time.Hour,
	})
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newTestService()

	for _, userID := range []string{"user-1", "b97dfc2c-9f5e-4d6a-8f0d-0a4a3f8f9f11"} {
		token, err := svc.Issue(userID)
		if err != nil {
			t.Fatalf("Issue(%q): %v", userID, err)
		}

		got, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if got != userID {
			t.Fatalf("Verify returned %q, want %q", got, userID)
		}
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestService()
	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := New(Config{
		Secret:   "a-completely-different-secret-value",
		Issuer:   "tunestack",
		Audience: "tunestack-users",
	})
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestVerifyWrongAudience(t *testing.T) {
	svc := newTestService()
	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := New(Config{
		Secret:   "test-secret-at-least-sixteen-bytes",
		Issuer:   "tunestack",
		Audience: "some-other-app",
	})
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for audience mismatch, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := newTestService()
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
