package token

import (
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("test-secret")

	raw, err := iss.Issue("u1", "123", repository.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "u1" || claims.TelegramID != "123" || claims.Role != repository.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != DefaultTTL {
		t.Fatalf("validity window = %v, want %v", got, DefaultTTL)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, _ := NewIssuer("secret-a").Issue("u1", "123", repository.RoleUser)

	_, err := NewIssuer("secret-b").Verify(raw)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	iss := NewIssuer("test-secret")
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := iss.Verify(raw); !errors.Is(err, ErrInvalid) {
			t.Fatalf("Verify(%q): expected ErrInvalid, got %v", raw, err)
		}
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	iss := NewIssuer("test-secret", WithClock(func() time.Time { return now }))

	raw, _ := iss.Issue("u1", "123", repository.RoleUser)

	// Justo antes del vencimiento sigue siendo válido.
	now = base.Add(DefaultTTL - time.Minute)
	if _, err := iss.Verify(raw); err != nil {
		t.Fatalf("Verify before expiry: %v", err)
	}

	now = base.Add(DefaultTTL + time.Minute)
	if _, err := iss.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	// Un rol fuera del conjunto cerrado invalida el token aunque la firma sea buena.
	iss := NewIssuer("test-secret")
	raw, _ := iss.Issue("u1", "123", repository.Role("superadmin"))

	if _, err := iss.Verify(raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown role, got %v", err)
	}
}

func TestRemainingTTL(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	iss := NewIssuer("test-secret", WithClock(func() time.Time { return now }))

	raw, _ := iss.Issue("u1", "123", repository.RoleUser)

	now = base.Add(24 * time.Hour)
	got := iss.RemainingTTL(raw)
	want := DefaultTTL - 24*time.Hour
	if got != want {
		t.Fatalf("RemainingTTL = %v, want %v", got, want)
	}

	// Token ilegible: se asume la ventana completa.
	if got := iss.RemainingTTL("garbage"); got != DefaultTTL {
		t.Fatalf("RemainingTTL(garbage) = %v, want %v", got, DefaultTTL)
	}
}
