package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saiteja-29/V-Hire/internal/models"
)

// RoomTokenClaims carry the authenticated identity a participant
// presents when connecting to a room.
type RoomTokenClaims struct {
	RoomID string      `json:"roomId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateRoomToken mints a short-lived access token for one room.
func GenerateRoomToken(roomID, email string, role models.Role, secret []byte) (string, error) {
	claims := RoomTokenClaims{
		RoomID: roomID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(4 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateRoomToken validates a room token and returns its claims.
func ValidateRoomToken(tokenString string, secret []byte) (*RoomTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RoomTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return token.Claims.(*RoomTokenClaims), nil
}
