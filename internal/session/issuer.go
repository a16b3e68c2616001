// Package session mints and validates the signed bearer token that
// represents an authenticated user.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 7 * 24 * time.Hour

// Issuer signs stateless HS256 session tokens bound to one user ID. There
// is no server-side revocation; a token stays valid until its expiry.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(key []byte) *Issuer {
	return &Issuer{key: key, ttl: defaultTTL, now: time.Now}
}

// Issue signs a token for userID expiring ttl from now.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate returns the user ID a token is bound to. Every failure mode
// (malformed, expired, wrong key) collapses into domain.ErrUnauthenticated
// so callers cannot distinguish them.
func (i *Issuer) Validate(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}
