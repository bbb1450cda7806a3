package utils

import (
	"testing"

	"github.com/saiteja-29/V-Hire/internal/models"
)

func TestRoomTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateRoomToken("room-1", "ivr@example.com", models.RoleInterviewer, secret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateRoomToken(token, secret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.RoomID != "room-1" || claims.Email != "ivr@example.com" || claims.Role != models.RoleInterviewer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRoomTokenWrongSecret(t *testing.T) {
	token, err := GenerateRoomToken("room-1", "cand@example.com", models.RoleCandidate, []byte("secret-a"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateRoomToken(token, []byte("secret-b")); err == nil {
		t.Fatalf("expected validation failure with wrong secret")
	}
}

func TestRoomTokenGarbage(t *testing.T) {
	if _, err := ValidateRoomToken("not-a-token", []byte("secret")); err == nil {
		t.Fatalf("expected validation failure for malformed token")
	}
}
