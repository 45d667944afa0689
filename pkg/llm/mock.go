package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/megasoby/shop-agent/pkg/models"
)

// MockProvider is the deterministic rule-based responder. It makes no
// network calls and never fails, which makes it the safe default and the
// fallback operators are pointed at when a remote provider misbehaves.
type MockProvider struct{}

// NewMockProvider returns the deterministic provider.
func NewMockProvider() *MockProvider { return &MockProvider{} }

// Generate branches on whether retrieval found anything and produces a
// canned but query-aware answer.
func (p *MockProvider) Generate(_ context.Context, question, _ string, products []models.Product) (string, error) {
	if len(products) == 0 {
		return noResultAnswer(question), nil
	}
	return productAnswer(question, products), nil
}

func noResultAnswer(question string) string {
	return fmt.Sprintf(
		"Hello! No product found for your question '%s'.\n\n"+
			"Try different keywords, or give me a specific product name and I will look again.\n\n"+
			"For example:\n"+
			"- 'recommend a lightweight laptop'\n"+
			"- 'show me wireless earbuds'\n"+
			"- 'tablets under $500'",
		question,
	)
}

func productAnswer(question string, products []models.Product) string {
	var b strings.Builder

	b.WriteString("Hello! Here is what I found for you.\n\n")
	fmt.Fprintf(&b, "%d products matched '%s':\n\n", len(products), question)

	displayCount := min(3, len(products))
	for i := 0; i < displayCount; i++ {
		p := products[i]
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p.Name)
		if p.Category != "" {
			fmt.Fprintf(&b, "   - Category: %s\n", p.Category)
		}
		if p.Price != nil {
			fmt.Fprintf(&b, "   - Price: %.0f\n", *p.Price)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "   - Description: %s\n", p.Description)
		}
		if p.Score != nil {
			fmt.Fprintf(&b, "   - Match: %.1f%%\n", *p.Score*100)
		}
		b.WriteString("\n")
	}

	if len(products) > displayCount {
		fmt.Fprintf(&b, "There are %d more related products.\n\n", len(products)-displayCount)
	}

	top := products[0]
	if top.Category != "" {
		b.WriteString(recommendation(top.Category, top.Name))
	}

	b.WriteString("\nLet me know if you have any other questions!")
	return b.String()
}

// recommendation picks a canned closing line keyed on the top result's
// category.
func recommendation(category, productName string) string {
	switch strings.ToLower(category) {
	case "laptop", "laptops":
		return "Looking for a laptop? " + productName + " balances performance and portability well.\n"
	case "smartphone", "smartphones":
		return "Looking for a smartphone? " + productName + " is a popular pick with up-to-date features.\n"
	case "tablet", "tablets":
		return "Looking for a tablet? " + productName + " handles both media and work nicely.\n"
	case "earbuds", "headphones":
		return "Looking for earbuds? " + productName + " stands out for sound quality and comfort.\n"
	default:
		return productName + " is a highly rated choice among customers.\n"
	}
}
