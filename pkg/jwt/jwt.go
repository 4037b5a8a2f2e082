// Package jwt emite y verifica los tokens de operador: quién dispara una acción
// de sincronización y con qué rol.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Operator identidad que viaja en el token. Role puede venir vacío en tokens ajenos;
// lo rechaza RequireRole, no la verificación.
type Operator struct {
	ID   string
	Role string
}

// operatorClaims el ID del operador va en sub; el rol en un claim propio.
type operatorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Issue firma con HS256 un token para op válido durante ttl. Cada token lleva un jti propio.
func Issue(secret, issuer string, op Operator, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if op.ID == "" {
		return "", fmt.Errorf("jwt: operador sin ID")
	}
	now := time.Now()
	claims := operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   op.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: op.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify valida firma (solo HS256), expiración obligatoria y sujeto no vacío.
// Con issuer no vacío exige además ese emisor. Los errores envuelven ErrInvalidToken.
func Verify(secret, issuer, token string) (Operator, error) {
	if secret == "" {
		return Operator{}, ErrEmptySecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	var claims operatorClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...); err != nil {
		return Operator{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Operator{}, fmt.Errorf("%w: sin sujeto", ErrInvalidToken)
	}
	return Operator{ID: claims.Subject, Role: claims.Role}, nil
}
