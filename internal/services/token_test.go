package services_test

import (
	"testing"
	"time"

	"bacbo-live-client/internal/services"
)

func TestTokenService(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Minute)

	token, err := tokens.IssueToken("client_1", "round_1")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	claims, err := tokens.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.ClientID != "client_1" || claims.RequestID != "round_1" {
		t.Errorf("Unexpected claims %+v", claims)
	}

	other := services.NewTokenService("other", time.Minute)
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Token signed with another secret should fail")
	}

	short := services.NewTokenService("secret", time.Nanosecond)
	stale, err := short.IssueToken("client_1", "round_2")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)
	if _, err := tokens.ValidateToken(stale); err == nil {
		t.Error("Expired token should fail")
	}
}
