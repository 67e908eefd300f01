package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("idp_123", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "idp_123" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("idp_123", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken(token, "another-secret-another-secret-ab"); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("idp_123", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken(token, testSecret); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseTokenMissingSubject(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := ParseToken(token, testSecret); err == nil {
		t.Fatal("expected token without sub to be rejected")
	}
}
