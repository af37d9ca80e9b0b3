package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extrae el claim exp de un token JWT sin validar la
// firma (la firma es responsabilidad del backend que lo emitió).
// Se usa como respaldo cuando la respuesta de autenticación no
// incluye expires_in.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(tokenString, &claims)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}
