package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
)

const (
	ErrNoToken      errors.Code = "no token"
	ErrInvalidToken errors.Code = "invalid token"
	// Sign was asked for a token without a user id
	ErrMissingUser errors.Code = "missing user id"
)

// Auth signs and verifies identity tokens presented on websocket connect.
type Auth interface {
	Sign(userID, username string) (string, error)
	Verify(tokenString string) (*Payload, error)
}

// Payload is the identity a token carries. Username is optional.
type Payload struct {
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}
