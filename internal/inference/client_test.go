package inference_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/inference"
)

func TestAnswer_SendsQuestionAndContext(t *testing.T) {
	var gotAuth string
	var gotBody map[string]map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"answer": "42", "score": 0.93})
	}))
	defer srv.Close()

	c := inference.NewClient("test-key", srv.URL, time.Second)
	answer, err := c.Answer(context.Background(), "What is the total?", "Total: 42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer != "42" {
		t.Errorf("answer = %q, want %q", answer, "42")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["inputs"]["question"] != "What is the total?" {
		t.Errorf("question = %q", gotBody["inputs"]["question"])
	}
	if gotBody["inputs"]["context"] != "Total: 42" {
		t.Errorf("context = %q", gotBody["inputs"]["context"])
	}
}

func TestAnswer_Non2xx_ReturnsErrorWithBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := inference.NewClient("test-key", srv.URL, time.Second)
	_, err := c.Answer(context.Background(), "q", "ctx")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error %q should carry status and body", err)
	}
}

func TestAnswer_EmptyAnswer_NoError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"score": 0.01})
	}))
	defer srv.Close()

	c := inference.NewClient("test-key", srv.URL, time.Second)
	answer, err := c.Answer(context.Background(), "q", "ctx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "" {
		t.Errorf("answer = %q, want empty", answer)
	}
}

func TestAnswer_Timeout_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := inference.NewClient("test-key", srv.URL, 50*time.Millisecond)
	if _, err := c.Answer(context.Background(), "q", "ctx"); err == nil {
		t.Fatal("expected timeout error")
	}
}
