package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient calls a standalone embedding API that accepts a text and
// answers with its vector. This is the default deployment shape: a small
// sidecar serving a 768-dimensional sentence model.
type HTTPClient struct {
	url        string
	httpClient *http.Client
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Vector []float32 `json:"vector"`
}

// NewHTTPClient creates a client for the embedding sidecar. An empty URL
// defaults to the local sidecar address.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	if url == "" {
		url = "http://localhost:5001/embed"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Embed posts the text to the sidecar and returns its vector.
func (c *HTTPClient) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &Error{Err: fmt.Errorf("embedding API error (status %d): %s", resp.StatusCode, body)}
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to parse embedding response: %w", err)}
	}
	if len(embedResp.Vector) == 0 {
		return nil, &Error{Err: fmt.Errorf("embedding API returned an empty vector")}
	}

	return embedResp.Vector, nil
}
