package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims holds the user data stored inside a JWT.
type CustomClaims struct {
	IDUsuario            string `json:"id_usuario"` // User identifier
	jwt.RegisteredClaims        // Standard JWT claims (ExpiresAt, IssuedAt, ...)
}

// GenerateToken creates a JWT for the given user id, signed with the
// secret key. The token lifetime is taken from tokenTTL.
func (j *MakerImpl) GenerateToken(idUsuario string) (string, error) {
	claims := CustomClaims{
		IDUsuario: idUsuario,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken parses a JWT, checks its signature and validity, and
// returns the CustomClaims when the token is correct.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
