package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrPhoneExists     = errors.New("phone already registered")
	ErrUnauthenticated = errors.New("unauthenticated")
)

type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Verified  bool
	CreatedAt time.Time
}
