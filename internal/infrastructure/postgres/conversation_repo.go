package postgres

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func (r *ConversationRepository) Append(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	query := `
		INSERT INTO conversations (owner_id, document_id, question, answer)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, document_id, question, answer, created_at`

	var c domain.Conversation
	err := r.pool.QueryRow(ctx, query, conv.OwnerID, conv.DocumentID, conv.Question, conv.Answer).
		Scan(&c.ID, &c.OwnerID, &c.DocumentID, &c.Question, &c.Answer, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append conversation: %w", err)
	}
	return &c, nil
}

func (r *ConversationRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Conversation, error) {
	query := `
		SELECT id, owner_id, document_id, question, answer, created_at
		FROM conversations
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []*domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.DocumentID, &c.Question, &c.Answer, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation row: %w", err)
		}
		convs = append(convs, &c)
	}
	return convs, rows.Err()
}
