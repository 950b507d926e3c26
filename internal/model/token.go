package model

import "github.com/google/uuid"

// TokenManager issues and validates session tokens for the
// backend-auth demo.
type TokenManager interface {
	GenerateSessionToken(userID uuid.UUID) (string, error)
	ParseSessionToken(tokenString string) (uuid.UUID, error)
}
