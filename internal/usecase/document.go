package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/ErlanBelekov/pdf-transparency/internal/extract"
	"github.com/ErlanBelekov/pdf-transparency/internal/metrics"
	"github.com/ErlanBelekov/pdf-transparency/internal/repository"
	"github.com/google/uuid"
)

const defaultMaxUploadBytes = 25 << 20

// TextExtractor converts document bytes into plain text. Extraction never
// fails hard; a document with no extractable text yields "".
type TextExtractor interface {
	Text(b []byte) string
}

// DocumentUsecase ingests uploads and serves owner-scoped listings. The
// uploaded bytes live only for the duration of Upload; nothing durable keeps
// the original binary.
type DocumentUsecase struct {
	docs           repository.DocumentRepository
	extractor      TextExtractor
	logger         *slog.Logger
	maxUploadBytes int
}

func NewDocumentUsecase(docs repository.DocumentRepository, extractor TextExtractor, logger *slog.Logger, maxUploadBytes int) *DocumentUsecase {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &DocumentUsecase{
		docs:           docs,
		extractor:      extractor,
		logger:         logger.With("component", "document_usecase"),
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload validates, extracts, and persists a document for ownerID.
func (u *DocumentUsecase) Upload(ctx context.Context, ownerID string, fileBytes []byte, originalName string) (*domain.Document, error) {
	if len(fileBytes) > u.maxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}
	if !extract.IsPDF(fileBytes) {
		return nil, domain.ErrUnsupportedType
	}

	text := u.extractor.Text(fileBytes)

	doc := &domain.Document{
		OwnerID:      ownerID,
		StoredName:   uuid.NewString(),
		OriginalName: originalName,
		Text:         text,
	}
	created, err := u.docs.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	metrics.DocumentUploadsTotal.Inc()
	metrics.DocumentUploadBytes.Observe(float64(len(fileBytes)))
	u.logger.InfoContext(ctx, "document ingested",
		"document_id", created.ID, "owner_id", ownerID, "bytes", len(fileBytes), "text_chars", len(text))
	return created, nil
}

// List returns ownerID's documents newest first. The extracted text is
// never part of the listing payload.
func (u *DocumentUsecase) List(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	docs, err := u.docs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
