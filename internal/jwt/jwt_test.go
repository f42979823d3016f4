package jwt

import (
	"testing"
	"time"
)

func TestCreateJWTToken(t *testing.T) {
	auth := NewTokenAuth("secret")

	tokenString, err := CreateJWTToken(auth, "cli")
	if err != nil {
		t.Fatalf("CreateJWTToken() error: %v", err)
	}

	token, err := auth.Decode(tokenString)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if token.Subject() != "cli" {
		t.Errorf("Subject() = %q", token.Subject())
	}
	if ttl := time.Until(token.Expiration()); ttl <= 0 || ttl > time.Hour {
		t.Errorf("token expires in %v", ttl)
	}

	if _, err := NewTokenAuth("other").Decode(tokenString); err == nil {
		t.Errorf("token verified with the wrong secret")
	}
}
