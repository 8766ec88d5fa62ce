// Package token issues and verifies the signed session tokens that carry a
// user identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the lifetime of an access token. Expiration is the only
// invalidation mechanism; there is no server-side revocation.
const TTL = time.Hour

var (
	// ErrInvalid is returned when a token is malformed or its signature
	// does not verify.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned when a well-formed, correctly signed token has
	// passed its expiration.
	ErrExpired = errors.New("token expired")
)

// Service issues HMAC-signed session tokens bound to a user identifier.
// The signing secret is fixed for the lifetime of the process.
type Service struct {
	secret []byte
}

// NewService constructs a Service with the given signing secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue produces a signed token whose subject is userID, expiring TTL from now.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiration of tokenString and returns the
// embedded user identifier. No store lookup happens here; the token is the
// sole proof of identity.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
