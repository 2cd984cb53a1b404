package token

import (
	"errors"
	"testing"
	"time"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

func testIdentity() domain.Identity {
	return domain.Identity{
		UserID:   7,
		Username: "admin",
		FullName: "Administrador",
		Role:     domain.RoleAdministrator,
	}
}

func TestIssuer_Roundtrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if raw == "" {
		t.Fatalf("expected a token, got empty string")
	}

	claims, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got := claims.Identity(); got != testIdentity() {
		t.Fatalf("identity mismatch: %+v", got)
	}
}

func TestIssuer_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Move the verifier's clock past the TTL.
	iss.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := iss.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestIssuer_ExpiredAtBoundary(t *testing.T) {
	issued := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	iss := NewIssuer("secret", time.Hour)
	iss.now = func() time.Time { return issued }

	raw, err := iss.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Exactly at expiry the token is no longer usable.
	iss.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := iss.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired at boundary, got %v", err)
	}

	// One second before expiry it still verifies.
	iss.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	if _, err := iss.Verify(raw); err != nil {
		t.Fatalf("expected valid token before expiry, got %v", err)
	}
}

func TestIssuer_WrongSecret(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	other := NewIssuer("different", time.Hour)

	raw, err := iss.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Verify(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestIssuer_Malformed(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	if _, err := iss.Verify("not-a-token"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
