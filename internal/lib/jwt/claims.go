// Package jwt implements generation and parsing of JWT tokens with
// custom claim fields.
//
// Maker defines the interface for creating and verifying tokens
// carrying the user id; MakerImpl is the concrete implementation backed
// by a secret key and a token lifetime.
package jwt

import (
	"time"
)

// Maker describes the interface for generating and parsing JWT tokens.
type Maker interface {
	// GenerateToken creates a signed token for the given user id.
	GenerateToken(idUsuario string) (string, error)
	// ParseToken returns the *CustomClaims held by a valid token.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker using a secret key and a token TTL.
type MakerImpl struct {
	secretKey string        // Secret key used to sign tokens.
	tokenTTL  time.Duration // Token lifetime.
}

// NewJWTMaker creates a new MakerImpl from a secret key and TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
