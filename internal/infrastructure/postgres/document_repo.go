package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	query := `
		INSERT INTO documents (owner_id, stored_name, original_name, extracted_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, stored_name, original_name, extracted_text, uploaded_at`

	row := r.pool.QueryRow(ctx, query, doc.OwnerID, doc.StoredName, doc.OriginalName, doc.Text)
	created, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return created, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Document, error) {
	query := `
		SELECT id, owner_id, stored_name, original_name, extracted_text, uploaded_at
		FROM documents
		WHERE id = $1 AND owner_id = $2`

	doc, err := scanDocument(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	// extracted_text stays out of listings; it is only loaded by FindByID.
	query := `
		SELECT id, owner_id, stored_name, original_name, uploaded_at
		FROM documents
		WHERE owner_id = $1
		ORDER BY uploaded_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.StoredName, &d.OriginalName, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.OwnerID, &d.StoredName, &d.OriginalName, &d.Text, &d.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}
