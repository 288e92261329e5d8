package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"gestion_comercial/internal/domain/entities"
)

func TestTokenService(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	actor := entities.Actor{
		ID:    "user-7",
		Email: "ventas@example.com",
		Name:  "Ventas",
		Capabilities: []entities.Capability{
			entities.CapabilityQuotationConvert,
			entities.CapabilityQuotationSend,
		},
	}

	t.Run("round trip", func(t *testing.T) {
		tok, err := svc.IssueToken(actor, time.Now())
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		got, err := svc.ValidateToken(tok)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if got.ID != "user-7" || got.Email != actor.Email || len(got.Capabilities) != 2 {
			t.Fatalf("unexpected actor %+v", got)
		}
		if !got.Holds(entities.CapabilityQuotationConvert) || got.Holds(entities.CapabilityQuotationCancel) {
			t.Fatalf("capabilities lost: %+v", got.Capabilities)
		}
	})

	t.Run("expired", func(t *testing.T) {
		tok, _ := svc.IssueToken(actor, time.Now().Add(-3*time.Hour))
		if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrExpiredToken) {
			t.Fatalf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		tok, _ := svc.IssueToken(actor, time.Now())
		if _, err := svc.ValidateToken(tok + "x"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		tok, _ := svc.IssueToken(entities.Actor{}, time.Now())
		if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrInvalidClaims) {
			t.Fatalf("expected ErrInvalidClaims, got %v", err)
		}
	})

	t.Run("env without secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")
		if _, err := NewTokenServiceFromEnv(); !errors.Is(err, ErrMissingJWTKey) {
			t.Fatalf("expected ErrMissingJWTKey, got %v", err)
		}
	})
}

func TestClaimsPermissionOracle(t *testing.T) {
	oracle := NewClaimsPermissionOracle()
	actor := entities.Actor{ID: "user-7", Capabilities: []entities.Capability{entities.CapabilityOrderView}}

	ok, err := oracle.HasCapability(context.Background(), actor, entities.CapabilityOrderView)
	if err != nil || !ok {
		t.Fatalf("expected allow, got %t %v", ok, err)
	}
	ok, err = oracle.HasCapability(context.Background(), actor, entities.CapabilityQuotationConvert)
	if err != nil || ok {
		t.Fatalf("expected deny, got %t %v", ok, err)
	}
}
