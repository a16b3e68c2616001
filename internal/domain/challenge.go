package domain

import (
	"errors"
	"time"
)

var (
	ErrChallengeNotFound = errors.New("no challenge issued")
	ErrChallengeExpired  = errors.New("challenge expired")
	ErrChallengeMismatch = errors.New("challenge code mismatch")
)

type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeLogin    Purpose = "login"
)

// Challenge is a one-time numeric code proving control of an email address.
// At most one live challenge exists per (email, purpose); issuing a new one
// replaces any prior row.
type Challenge struct {
	ID        string
	Email     string
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (c *Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
