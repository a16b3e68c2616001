package repository

import (
	"context"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	// FindByID scopes the lookup to ownerID. A document owned by someone
	// else is domain.ErrDocumentNotFound, indistinguishable from absence.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Document, error)
	// ListByOwner returns the owner's documents newest first, with Text
	// left empty (the projection excludes extracted_text).
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error)
}
