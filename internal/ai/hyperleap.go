package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const hyperleapKeyHeader = "x-hl-api-key"

// HyperleapCompleter executes stored prompts against the Hyperleap prompt API.
type HyperleapCompleter struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHyperleapCompleter builds a completer for endpoint. A zero timeout leaves
// deadlines to the caller's context.
func NewHyperleapCompleter(endpoint, apiKey string, timeout time.Duration) *HyperleapCompleter {
	return &HyperleapCompleter{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Complete posts req and returns choices[0].message.content.
func (h *HyperleapCompleter) Complete(ctx context.Context, req PromptRequest) (string, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("hyperleap: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("hyperleap: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(hyperleapKeyHeader, h.apiKey)

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("hyperleap: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("hyperleap: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("hyperleap: unexpected status %d: %s", resp.StatusCode, truncate(body, 256))
	}

	var pr promptResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("hyperleap: %w: %v", ErrBadEnvelope, err)
	}
	if len(pr.Choices) == 0 || pr.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("hyperleap: prompt %s: %w", req.PromptID, ErrEmptyContent)
	}
	return pr.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
