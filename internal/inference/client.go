// Package inference calls an external extractive question-answering model.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultModelURL = "https://api-inference.huggingface.co/models/deepset/roberta-base-squad2"
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 512
)

// Client sends (question, context) pairs to a HuggingFace-style inference
// endpoint. The call is the single external blocking step in the Q&A path,
// so the client carries its own timeout on top of the request context.
type Client struct {
	apiKey   string
	modelURL string
	client   *http.Client
}

type qaRequest struct {
	Inputs qaInputs `json:"inputs"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type qaResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

func NewClient(apiKey, modelURL string, timeout time.Duration) *Client {
	if modelURL == "" {
		modelURL = defaultModelURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:   apiKey,
		modelURL: modelURL,
		client:   &http.Client{Timeout: timeout},
	}
}

// Answer returns the model's best answer for question given contextText.
// An empty answer with a nil error means the model found nothing; callers
// decide what to surface.
func (c *Client) Answer(ctx context.Context, question, contextText string) (string, error) {
	payload, err := json.Marshal(qaRequest{Inputs: qaInputs{Question: question, Context: contextText}})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out qaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}
	return out.Answer, nil
}
