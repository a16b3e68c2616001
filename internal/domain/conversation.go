package domain

import (
	"errors"
	"time"
)

var (
	ErrInferenceFailed = errors.New("inference request failed")
	ErrMissingQuestion = errors.New("question is empty")
)

// Conversation is one question/answer exchange against a document.
// Entries are append-only.
type Conversation struct {
	ID         string
	OwnerID    string
	DocumentID string
	Question   string
	Answer     string
	CreatedAt  time.Time
}
