package handler_test

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/ErlanBelekov/pdf-transparency/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

type fakeQAUsecase struct {
	ask     func(ctx context.Context, ownerID, documentID, question string) (*domain.Conversation, error)
	history func(ctx context.Context, ownerID string) ([]*domain.Conversation, error)
}

func (f *fakeQAUsecase) Ask(ctx context.Context, ownerID, documentID, question string) (*domain.Conversation, error) {
	return f.ask(ctx, ownerID, documentID, question)
}

func (f *fakeQAUsecase) History(ctx context.Context, ownerID string) ([]*domain.Conversation, error) {
	return f.history(ctx, ownerID)
}

type fakeDocumentUsecase struct {
	upload func(ctx context.Context, ownerID string, fileBytes []byte, originalName string) (*domain.Document, error)
	list   func(ctx context.Context, ownerID string) ([]*domain.Document, error)
}

func (f *fakeDocumentUsecase) Upload(ctx context.Context, ownerID string, fileBytes []byte, originalName string) (*domain.Document, error) {
	return f.upload(ctx, ownerID, fileBytes, originalName)
}

func (f *fakeDocumentUsecase) List(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	return f.list(ctx, ownerID)
}

// newAuthedEngine wires the handlers behind a stub that injects userID the
// way the session middleware does.
func newAuthedEngine(qa *fakeQAUsecase, docs *fakeDocumentUsecase, userID string) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	if qa != nil {
		h := handler.NewQAHandler(qa, logger)
		r.POST("/api/ask", h.Ask)
		r.GET("/api/conversations", h.History)
	}
	if docs != nil {
		h := handler.NewDocumentHandler(docs, logger)
		r.POST("/api/upload-pdf", h.Upload)
		r.GET("/api/my-pdfs", h.List)
	}
	return r
}

func TestAsk_MissingPDFID_400(t *testing.T) {
	r := newAuthedEngine(&fakeQAUsecase{}, nil, "user-1")

	w := post(r, "/api/ask", `{"question":"What is the total?"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decode(t, w)["error"]; got != "missing_pdfId" {
		t.Errorf("error = %v, want missing_pdfId", got)
	}
}

func TestAsk_BlankQuestion_400(t *testing.T) {
	qa := &fakeQAUsecase{
		ask: func(context.Context, string, string, string) (*domain.Conversation, error) {
			return nil, domain.ErrMissingQuestion
		},
	}

	w := post(newAuthedEngine(qa, nil, "user-1"), "/api/ask", `{"pdfId":"doc-1","question":" "}`)

	if got := decode(t, w)["error"]; got != "missing_question" {
		t.Errorf("error = %v, want missing_question", got)
	}
}

func TestAsk_ForeignDocument_404(t *testing.T) {
	qa := &fakeQAUsecase{
		ask: func(context.Context, string, string, string) (*domain.Conversation, error) {
			return nil, domain.ErrDocumentNotFound
		},
	}

	w := post(newAuthedEngine(qa, nil, "user-1"), "/api/ask", `{"pdfId":"doc-1","question":"q"}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if got := decode(t, w)["error"]; got != "pdf_not_found" {
		t.Errorf("error = %v, want pdf_not_found", got)
	}
}

func TestAsk_InferenceFailure_500(t *testing.T) {
	qa := &fakeQAUsecase{
		ask: func(context.Context, string, string, string) (*domain.Conversation, error) {
			return nil, domain.ErrInferenceFailed
		},
	}

	w := post(newAuthedEngine(qa, nil, "user-1"), "/api/ask", `{"pdfId":"doc-1","question":"q"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if got := decode(t, w)["error"]; got != "llm_error" {
		t.Errorf("error = %v, want llm_error", got)
	}
}

func TestAsk_OK(t *testing.T) {
	qa := &fakeQAUsecase{
		ask: func(_ context.Context, ownerID, documentID, question string) (*domain.Conversation, error) {
			if ownerID != "user-1" || documentID != "doc-1" {
				t.Errorf("args = %q %q", ownerID, documentID)
			}
			return &domain.Conversation{ID: "conv-1", Question: question, Answer: "42"}, nil
		},
	}

	w := post(newAuthedEngine(qa, nil, "user-1"), "/api/ask", `{"pdfId":"doc-1","question":"What is the total?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decode(t, w)
	if body["answer"] != "42" || body["convId"] != "conv-1" {
		t.Errorf("body = %v", body)
	}
}

func TestUpload_NoFile_400(t *testing.T) {
	r := newAuthedEngine(nil, &fakeDocumentUsecase{}, "user-1")

	w := post(r, "/api/upload-pdf", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decode(t, w)["error"]; got != "no_file" {
		t.Errorf("error = %v, want no_file", got)
	}
}

func TestUpload_OK_PassesBytesAndName(t *testing.T) {
	content := []byte("%PDF-1.4 fake body")
	docs := &fakeDocumentUsecase{
		upload: func(_ context.Context, ownerID string, fileBytes []byte, originalName string) (*domain.Document, error) {
			if ownerID != "user-1" {
				t.Errorf("ownerID = %q", ownerID)
			}
			if !bytes.Equal(fileBytes, content) {
				t.Error("file bytes were mangled in transit")
			}
			if originalName != "invoice.pdf" {
				t.Errorf("name = %q", originalName)
			}
			return &domain.Document{ID: "doc-1", OriginalName: originalName}, nil
		},
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("pdf", "invoice.pdf")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write(content)
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newAuthedEngine(nil, docs, "user-1").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	pdf, ok := decode(t, w)["pdf"].(map[string]any)
	if !ok || pdf["id"] != "doc-1" {
		t.Errorf("pdf payload = %v", pdf)
	}
}

func TestListDocuments_OmitsText(t *testing.T) {
	docs := &fakeDocumentUsecase{
		list: func(context.Context, string) ([]*domain.Document, error) {
			return []*domain.Document{
				{ID: "doc-1", OriginalName: "invoice.pdf", Text: "Total: 42"},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/my-pdfs", nil)
	newAuthedEngine(nil, docs, "user-1").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("Total: 42")) {
		t.Errorf("listing payload %q exposes extracted text", w.Body.String())
	}
}
