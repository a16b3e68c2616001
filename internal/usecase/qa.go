package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/ErlanBelekov/pdf-transparency/internal/metrics"
	"github.com/ErlanBelekov/pdf-transparency/internal/repository"
)

const (
	// Bounded prefix of the extracted text used as the model's context
	// window.
	maxContextChars = 30000

	fallbackAnswer = "Sorry, I couldn't find an answer."
)

// Answerer is the external question-answering capability.
type Answerer interface {
	Answer(ctx context.Context, question, contextText string) (string, error)
}

// QAUsecase answers questions about a stored document and records each
// exchange.
type QAUsecase struct {
	docs   repository.DocumentRepository
	convs  repository.ConversationRepository
	model  Answerer
	logger *slog.Logger
}

func NewQAUsecase(docs repository.DocumentRepository, convs repository.ConversationRepository, model Answerer, logger *slog.Logger) *QAUsecase {
	return &QAUsecase{
		docs:   docs,
		convs:  convs,
		model:  model,
		logger: logger.With("component", "qa_usecase"),
	}
}

// Ask answers question against the document's text and appends the exchange
// to the conversation log. Nothing is persisted when inference fails.
func (u *QAUsecase) Ask(ctx context.Context, ownerID, documentID, question string) (*domain.Conversation, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrMissingQuestion
	}

	// Owner scoping happens in the lookup; someone else's document is
	// indistinguishable from a missing one.
	doc, err := u.docs.FindByID(ctx, documentID, ownerID)
	if err != nil {
		return nil, err
	}

	contextText := doc.Text
	if len(contextText) > maxContextChars {
		contextText = contextText[:maxContextChars]
	}

	start := time.Now()
	answer, err := u.model.Answer(ctx, question, contextText)
	if err != nil {
		metrics.InferenceDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		u.logger.ErrorContext(ctx, "inference call failed", "document_id", doc.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}
	metrics.InferenceDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	if answer == "" {
		answer = fallbackAnswer
	}

	conv, err := u.convs.Append(ctx, &domain.Conversation{
		OwnerID:    ownerID,
		DocumentID: doc.ID,
		Question:   question,
		Answer:     answer,
	})
	if err != nil {
		return nil, fmt.Errorf("record conversation: %w", err)
	}

	metrics.ConversationsTotal.Inc()
	return conv, nil
}

// History returns all of ownerID's exchanges newest first. Filtering to one
// document is left to the client.
func (u *QAUsecase) History(ctx context.Context, ownerID string) ([]*domain.Conversation, error) {
	convs, err := u.convs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}
