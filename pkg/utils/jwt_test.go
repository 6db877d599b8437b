package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	ConfigureJWT("unit-test-secret", 1)

	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "token@example.com",
		Role:      models.UserRoleUser,
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed validating token: %v", err)
	}

	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Fatalf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != models.UserRoleUser {
		t.Fatalf("expected role %s, got %s", models.UserRoleUser, claims.Role)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	ConfigureJWT("unit-test-secret", 1)

	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "tamper@example.com",
		Role:      models.UserRoleUser,
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating token: %v", err)
	}

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := ValidateToken("not.a.token"); err == nil {
			t.Fatal("expected validation to fail")
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		ConfigureJWT("a-different-secret", 1)
		defer ConfigureJWT("unit-test-secret", 1)
		if _, err := ValidateToken(token); err == nil {
			t.Fatal("expected validation to fail under a rotated secret")
		}
	})
}
