package security

import (
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	signed, err := GenerateSessionToken(testSecret, "64f1a2b3c4d5e6f708192a3b", "ada", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	claims, err := ParseSessionToken(signed, testSecret)
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}

	if claims.UserID != "64f1a2b3c4d5e6f708192a3b" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Username != "ada" {
		t.Errorf("Username = %q", claims.Username)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.ID == "" {
		t.Error("jti not set")
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateSessionToken(testSecret, "u1", "ada", "designer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if _, err := ParseSessionToken(signed, "some-other-secret"); err == nil {
		t.Error("token with wrong secret parsed")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	signed, err := GenerateSessionToken(testSecret, "u1", "ada", "designer", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if _, err := ParseSessionToken(signed, testSecret); err == nil {
		t.Error("expired token parsed")
	}
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseSessionToken("not.a.jwt", testSecret); err == nil {
		t.Error("malformed token parsed")
	}
}
