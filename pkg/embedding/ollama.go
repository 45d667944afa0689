package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaClient computes embeddings through a local Ollama server. Useful
// when running fully self-hosted without the embedding sidecar.
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient connects to the Ollama server at host (default
// http://localhost:11434) using the given embedding model.
func NewOllamaClient(host, model string) (*OllamaClient, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}

	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host URL: %w", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &OllamaClient{
		client: api.NewClient(parsed, httpClient),
		model:  model,
	}, nil
}

// Embed requests an embedding from the Ollama embeddings endpoint.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  c.model,
		Prompt: text,
	})
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("ollama embeddings request failed: %w", err)}
	}
	if len(resp.Embedding) == 0 {
		return nil, &Error{Err: fmt.Errorf("ollama returned an empty embedding")}
	}

	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
