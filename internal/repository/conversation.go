package repository

import (
	"context"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
)

type ConversationRepository interface {
	Append(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Conversation, error)
}
