package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/gin-gonic/gin"
)

type documentUsecaser interface {
	Upload(ctx context.Context, ownerID string, fileBytes []byte, originalName string) (*domain.Document, error)
	List(ctx context.Context, ownerID string) ([]*domain.Document, error)
}

type DocumentHandler struct {
	docs   documentUsecaser
	logger *slog.Logger
}

func NewDocumentHandler(docs documentUsecaser, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, logger: logger.With("component", "document_handler")}
}

type documentResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// POST /api/upload-pdf, multipart form, file field "pdf".
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("pdf")
	if err != nil {
		fail(c, http.StatusBadRequest, errNoFile)
		return
	}

	f, err := file.Open()
	if err != nil {
		h.writeError(c, err, "open upload")
		return
	}
	defer f.Close()

	// The bytes only live for this request; extraction output is what gets
	// stored.
	data, err := io.ReadAll(f)
	if err != nil {
		h.writeError(c, err, "read upload")
		return
	}

	doc, err := h.docs.Upload(c.Request.Context(), c.GetString("userID"), data, file.Filename)
	if err != nil {
		h.writeError(c, err, "upload document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "pdf": documentResponse{
		ID:           doc.ID,
		OriginalName: doc.OriginalName,
		UploadedAt:   doc.UploadedAt,
	}})
}

// GET /api/my-pdfs
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docs.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.writeError(c, err, "list documents")
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentResponse{ID: d.ID, OriginalName: d.OriginalName, UploadedAt: d.UploadedAt})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pdfs": out})
}

func (h *DocumentHandler) writeError(c *gin.Context, err error, op string) {
	if status, code, ok := domainStatus(err); ok {
		fail(c, status, code)
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	fail(c, http.StatusInternalServerError, errServer)
}
