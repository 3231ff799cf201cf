package util

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "ana", "student", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "ana" || claims.Role != "student" {
		t.Errorf("claims = %+v, want userID 42 / ana / student", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(1, "ana", "student", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ParseJWT(token, "another-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseJWT() error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(1, "ana", "student", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ParseJWT(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ParseJWT() error = %v, want ErrTokenExpired", err)
	}
}
