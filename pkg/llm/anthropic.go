package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/megasoby/shop-agent/pkg/models"
)

const (
	defaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
)

// AnthropicOptions configures the direct Anthropic API provider.
type AnthropicOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// AnthropicProvider calls the Anthropic messages API over plain HTTP.
// Upstream failures become soft fallback answers rather than errors, so a
// broken credential or network never takes the whole request down.
type AnthropicProvider struct {
	opts       AnthropicOptions
	httpClient *http.Client
	log        zerolog.Logger
}

// anthropicRequest is the messages API request body
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicProvider creates the direct API provider. Defaults: official
// endpoint, 1024 max tokens, 0.7 temperature, 60s timeout.
func NewAnthropicProvider(opts AnthropicOptions, log zerolog.Logger) *AnthropicProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultAnthropicURL
	}
	if opts.Model == "" {
		opts.Model = defaultAnthropicModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &AnthropicProvider{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		log:        log.With().Str("component", "llm").Str("provider", "anthropic").Logger(),
	}
}

// Generate builds the product prompt pair and runs one exchange.
func (p *AnthropicProvider) Generate(ctx context.Context, question, ragContext string, products []models.Product) (string, error) {
	return p.Chat(ctx, productSystemPrompt, buildUserPrompt(question, ragContext, products))
}

// Chat sends one system+user exchange to the messages API. Transport and
// status failures return a soft apologetic answer with a nil error.
func (p *AnthropicProvider) Chat(ctx context.Context, system, user string) (string, error) {
	if p.opts.APIKey == "" {
		p.log.Error().Msg("anthropic API key is not configured")
		return "Sorry, the Anthropic API key is not configured. Set it in the service configuration, or switch llm.provider to 'mock'.", nil
	}

	reqBody, err := json.Marshal(anthropicRequest{
		Model:       p.opts.Model,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: p.opts.Temperature,
		System:      system,
		Messages:    []anthropicMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", &GenerationError{Provider: "anthropic", Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.opts.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", &GenerationError{Provider: "anthropic", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.opts.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.log.Error().Err(err).Msg("anthropic API call failed")
		return fmt.Sprintf("Sorry, the AI call failed: %v\n\nTo use the offline responder instead, switch llm.provider to 'mock'.", err), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to read anthropic response")
		return fmt.Sprintf("Sorry, reading the AI response failed: %v", err), nil
	}

	if resp.StatusCode != http.StatusOK {
		p.log.Error().Int("status", resp.StatusCode).Bytes("body", body).Msg("anthropic API error")
		return fmt.Sprintf("Sorry, the AI call returned an error (status %d).\n\nTo use the offline responder instead, switch llm.provider to 'mock'.", resp.StatusCode), nil
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Content) == 0 {
		p.log.Error().Err(err).Msg("failed to parse anthropic response")
		return "Sorry, the AI response could not be parsed.", nil
	}

	p.log.Debug().Msg("anthropic response ok")
	return parsed.Content[0].Text, nil
}
