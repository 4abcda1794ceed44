package services_test

import (
	"errors"
	"testing"
	"time"

	"feedify/internal/services"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueToken(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice@test.com", "Alice")

	auth := services.NewAuthService("test-secret", time.Hour)
	token, got, err := auth.IssueToken(db, "alice@test.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, got.ID)
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("Expected a valid token, got %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if uint(claims["user_id"].(float64)) != user.ID {
		t.Errorf("Expected user_id claim %d, got %v", user.ID, claims["user_id"])
	}
}

func TestIssueTokenUnknownEmail(t *testing.T) {
	db := setupTestDB(t)

	auth := services.NewAuthService("test-secret", time.Hour)
	_, _, err := auth.IssueToken(db, "nobody@test.com")
	if !errors.Is(err, services.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
