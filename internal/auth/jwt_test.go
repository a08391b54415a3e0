package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key-for-tokens"

func TestTokenRoundTrip(t *testing.T) {
	service, err := NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatal("Failed to create token service:", err)
	}

	token, err := service.Generate(42)
	if err != nil {
		t.Fatal("Failed to generate token:", err)
	}

	userID, err := service.Validate(token)
	if err != nil {
		t.Fatal("Failed to validate token:", err)
	}

	if userID != 42 {
		t.Errorf("Expected user ID 42, got %d", userID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	service, err := NewTokenService(testSecret, -time.Minute)
	if err != nil {
		t.Fatal("Failed to create token service:", err)
	}

	token, err := service.Generate(42)
	if err != nil {
		t.Fatal("Failed to generate token:", err)
	}

	if _, err := service.Validate(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	service, err := NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatal("Failed to create token service:", err)
	}

	other, err := NewTokenService("a-completely-different-secret", time.Hour)
	if err != nil {
		t.Fatal("Failed to create token service:", err)
	}

	token, err := service.Generate(42)
	if err != nil {
		t.Fatal("Failed to generate token:", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("Expected token signed with another secret to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	service, err := NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatal("Failed to create token service:", err)
	}

	if _, err := service.Validate("not-a-token"); err == nil {
		t.Error("Expected malformed token to be rejected")
	}
}

func TestShortSecretRejected(t *testing.T) {
	if _, err := NewTokenService("short", time.Hour); err == nil {
		t.Error("Expected short secret to be rejected")
	}
}
