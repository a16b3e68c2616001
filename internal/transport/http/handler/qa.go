package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/gin-gonic/gin"
)

type qaUsecaser interface {
	Ask(ctx context.Context, ownerID, documentID, question string) (*domain.Conversation, error)
	History(ctx context.Context, ownerID string) ([]*domain.Conversation, error)
}

type QAHandler struct {
	qa     qaUsecaser
	logger *slog.Logger
}

func NewQAHandler(qa qaUsecaser, logger *slog.Logger) *QAHandler {
	return &QAHandler{qa: qa, logger: logger.With("component", "qa_handler")}
}

type askRequest struct {
	PDFID    string `json:"pdfId"`
	Question string `json:"question"`
}

type conversationResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"pdfId"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

// POST /api/ask
func (h *QAHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errMissingFields)
		return
	}
	if req.PDFID == "" {
		fail(c, http.StatusBadRequest, errMissingPDFID)
		return
	}

	conv, err := h.qa.Ask(c.Request.Context(), c.GetString("userID"), req.PDFID, req.Question)
	if err != nil {
		h.writeError(c, err, "ask")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "answer": conv.Answer, "convId": conv.ID})
}

// GET /api/conversations
func (h *QAHandler) History(c *gin.Context) {
	convs, err := h.qa.History(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.writeError(c, err, "conversation history")
		return
	}

	out := make([]conversationResponse, 0, len(convs))
	for _, conv := range convs {
		out = append(out, conversationResponse{
			ID:         conv.ID,
			DocumentID: conv.DocumentID,
			Question:   conv.Question,
			Answer:     conv.Answer,
			CreatedAt:  conv.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "convs": out})
}

func (h *QAHandler) writeError(c *gin.Context, err error, op string) {
	if status, code, ok := domainStatus(err); ok {
		fail(c, status, code)
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	fail(c, http.StatusInternalServerError, errServer)
}
