package auth

import (
	"testing"
	"time"

	"confms/internal/config"
)

func newTestService(expiration time.Duration) *Service {
	return NewService(&config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "confms-test",
		Expiration: expiration,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.GenerateToken("user-123", "chair@conf.org", "Ada Chair", "chair")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.Email != "chair@conf.org" {
		t.Errorf("Email = %q, want %q", claims.Email, "chair@conf.org")
	}
	if claims.Role != "chair" {
		t.Errorf("Role = %q, want %q", claims.Role, "chair")
	}
	if claims.Issuer != "confms-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "confms-test")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service := newTestService(time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := service.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) expected error, got nil", token)
		}
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	other := NewService(&config.JWTConfig{
		Secret:     "a-different-secret",
		Issuer:     "confms-test",
		Expiration: time.Hour,
	})

	token, err := service.GenerateToken("user-123", "chair@conf.org", "Ada Chair", "chair")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := newTestService(-time.Minute)

	token, err := service.GenerateToken("user-123", "chair@conf.org", "Ada Chair", "chair")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := VerifyPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("VerifyPassword() with correct password error = %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("VerifyPassword() with wrong password expected error")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	token1, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}
	token2, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}

	if len(token1) != 64 {
		t.Errorf("token length = %d, want 64", len(token1))
	}
	if token1 == token2 {
		t.Error("two generated tokens must differ")
	}
}
