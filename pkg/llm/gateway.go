package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/rs/zerolog"

	"github.com/megasoby/shop-agent/pkg/models"
)

// GatewayOptions configures the managed-gateway provider. The gateway
// speaks the chat-completions protocol and owns transport and auth.
type GatewayOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// GatewayProvider delegates generation to a managed LLM gateway through
// its SDK client. Same prompt contract and fallback policy as the direct
// API provider.
type GatewayProvider struct {
	client *openai.Client
	opts   GatewayOptions
	log    zerolog.Logger
}

// NewGatewayProvider creates the managed-gateway provider.
func NewGatewayProvider(opts GatewayOptions, log zerolog.Logger) (*GatewayProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}

	clientOptions := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(clientOptions...)

	return &GatewayProvider{
		client: &client,
		opts:   opts,
		log:    log.With().Str("component", "llm").Str("provider", "gateway").Logger(),
	}, nil
}

// Generate builds the product prompt pair and runs one exchange.
func (p *GatewayProvider) Generate(ctx context.Context, question, ragContext string, products []models.Product) (string, error) {
	return p.Chat(ctx, productSystemPrompt, buildUserPrompt(question, ragContext, products))
}

// Chat sends one system+user exchange through the gateway. Failures come
// back as soft fallback answers, matching the direct API provider.
func (p *GatewayProvider) Chat(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(int64(p.opts.MaxTokens)),
		Temperature: openai.Float(p.opts.Temperature),
	})
	if err != nil {
		p.log.Error().Err(err).Msg("gateway call failed")
		return fmt.Sprintf("Sorry, the AI call failed: %v\n\nTo use the offline responder instead, switch llm.provider to 'mock'.", err), nil
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		p.log.Error().Msg("gateway returned no choices")
		return "Sorry, the AI returned an empty response.", nil
	}

	p.log.Debug().Msg("gateway response ok")
	return resp.Choices[0].Message.Content, nil
}
