// Package llm abstracts answer generation behind a provider interface with
// three implementations: a deterministic rule-based responder, a direct
// Anthropic API client, and a managed-gateway client. The provider is
// chosen once at startup and never changes per request.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/megasoby/shop-agent/pkg/models"
)

// Provider generates an answer from a question, the assembled retrieval
// context, and the retrieved products. Implementations must produce a
// graceful textual answer when products is empty, never an error.
type Provider interface {
	Generate(ctx context.Context, question, context string, products []models.Product) (string, error)
}

// Chatter is the lower-level capability of network-backed providers:
// a raw system+user exchange. Flows with their own prompt shape (the guide
// flow) type-assert for it; the deterministic provider does not offer it.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// GenerationError reports a provider-internal failure that prevented any
// text from being produced. Expected upstream failures (timeouts, bad
// status) are instead converted to soft fallback answers by the providers
// themselves.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// productSystemPrompt is the fixed instruction shared by the network
// providers for the product-discovery flow.
const productSystemPrompt = `You are a friendly, professional shopping assistant.
You help customers discover and compare products.

Response guide:
1. Answer based on the retrieved product information.
2. Highlight each product's key features and strengths.
3. Offer helpful extra details where you can.
4. Keep the tone natural and conversational.`

// maxPromptItems bounds how many item summaries go into the user prompt.
const maxPromptItems = 5

// buildUserPrompt assembles the user message for the product flow:
// question, retrieval context, and up to maxPromptItems item summaries.
func buildUserPrompt(question, ragContext string, products []models.Product) string {
	var b strings.Builder

	b.WriteString("=== Customer question ===\n")
	b.WriteString(question + "\n\n")

	if len(products) > 0 {
		b.WriteString("=== Retrieved products ===\n")
		b.WriteString(ragContext + "\n\n")

		b.WriteString("=== Product details ===\n")
		for i, p := range products {
			if i == maxPromptItems {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
			if p.Category != "" {
				fmt.Fprintf(&b, "   - Category: %s\n", p.Category)
			}
			if p.Price != nil {
				fmt.Fprintf(&b, "   - Price: %.0f\n", *p.Price)
			}
			if p.Description != "" {
				fmt.Fprintf(&b, "   - Description: %s\n", p.Description)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("No products were found. Suggest some alternative search keywords.\n")
	}

	b.WriteString("\nWrite a helpful answer for the customer:")
	return b.String()
}
