package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChallengeRepository struct {
	pool *pgxpool.Pool
}

func NewChallengeRepository(pool *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{pool: pool}
}

func (r *ChallengeRepository) Replace(ctx context.Context, email string, purpose domain.Purpose, code string, expiresAt time.Time) error {
	// The unique index on (email, purpose) serializes concurrent issues for
	// the same pair; the upsert leaves exactly one live row, last writer wins.
	query := `
		INSERT INTO otp_challenges (email, purpose, code, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, purpose)
		DO UPDATE SET code = EXCLUDED.code,
		              expires_at = EXCLUDED.expires_at,
		              created_at = NOW()`

	if _, err := r.pool.Exec(ctx, query, email, purpose, code, expiresAt); err != nil {
		return fmt.Errorf("replace challenge: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) Find(ctx context.Context, email string, purpose domain.Purpose) (*domain.Challenge, error) {
	query := `
		SELECT id, email, purpose, code, expires_at, created_at
		FROM otp_challenges
		WHERE email = $1 AND purpose = $2`

	var c domain.Challenge
	err := r.pool.QueryRow(ctx, query, email, purpose).
		Scan(&c.ID, &c.Email, &c.Purpose, &c.Code, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("find challenge: %w", err)
	}
	return &c, nil
}

func (r *ChallengeRepository) Consume(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM otp_challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("consume challenge: %w", err)
	}
	// Zero rows means a concurrent verify already consumed it.
	if tag.RowsAffected() == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (r *ChallengeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM otp_challenges WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired challenges: %w", err)
	}
	return tag.RowsAffected(), nil
}
