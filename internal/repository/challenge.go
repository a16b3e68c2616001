package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
)

type ChallengeRepository interface {
	// Replace stores a challenge for (email, purpose), atomically displacing
	// any prior row for the same pair. Last writer wins.
	Replace(ctx context.Context, email string, purpose domain.Purpose, code string, expiresAt time.Time) error
	// Find returns the live challenge for (email, purpose), or
	// domain.ErrChallengeNotFound.
	Find(ctx context.Context, email string, purpose domain.Purpose) (*domain.Challenge, error)
	// Consume deletes a challenge by ID. Returns domain.ErrChallengeNotFound
	// when the row is already gone, so a racing verify cannot succeed twice.
	Consume(ctx context.Context, id string) error
	// DeleteExpired purges challenges past their expiry and reports how many
	// rows were removed. Read-time expiry checks are the correctness
	// mechanism; this only keeps the table small.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
