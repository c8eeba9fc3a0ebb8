package main

import (
	"testing"

	jwt "github.com/golang-jwt/jwt"
)

func TestGetBearerToken(t *testing.T) {
	token, err := getBearerToken("Bearer abc123")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if token != "abc123" {
		t.Fatalf("Expected %v, got %v", "abc123", token)
	}

	// extra whitespace is tolerated
	token, err = getBearerToken("  Bearer   abc123  ")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if token != "abc123" {
		t.Fatalf("Expected %v, got %v", "abc123", token)
	}

	badValues := []string{
		"",
		"Bearer",
		"Bearer ",
		"Basic abc123",
		"Bearer undefined",
		"abc123",
	}

	for _, val := range badValues {
		if _, err := getBearerToken(val); err == nil {
			t.Fatalf("Expected error for [%s]", val)
		}
	}
}

func TestValidateToken(t *testing.T) {
	p := testPool()

	claims := shopClaims{UserID: "user1", Role: "customer"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(p.config.Service.JWTKey))
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	parsed, err := p.validateToken(token)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if parsed.UserID != "user1" || parsed.Role != "customer" {
		t.Fatalf("Expected user1/customer, got %s/%s", parsed.UserID, parsed.Role)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	p := testPool()

	claims := shopClaims{UserID: "user1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte("some_other_key"))
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if _, err := p.validateToken(token); err == nil {
		t.Fatalf("Expected error for token signed with wrong key")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	p := testPool()

	if _, err := p.validateToken("not.a.token"); err == nil {
		t.Fatalf("Expected error for malformed token")
	}
}
