package repository

import (
	"context"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailExists when the
	// email is already taken; the unique constraint is the authority, not
	// any earlier duplicate pre-check.
	Create(ctx context.Context, name, email, phone string, verified bool) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	NameExists(ctx context.Context, name string) (bool, error)
}
