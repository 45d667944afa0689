// Package ragctx turns retrieval results into the plain-text context block
// handed to a generation provider. Everything here is pure and
// deterministic: the same inputs always produce byte-identical output.
package ragctx

import (
	"fmt"
	"strings"

	"github.com/megasoby/shop-agent/pkg/models"
)

// NoProductResults is the context returned when product retrieval matched
// nothing.
const NoProductResults = "No matching products were found."

// NoGuideResults is the context returned when guide retrieval matched
// nothing.
const NoGuideResults = "No matching support guides were found."

// ProductContext formats retrieved products into a numbered context block.
func ProductContext(query string, products []models.Product) string {
	if len(products) == 0 {
		return NoProductResults
	}

	var b strings.Builder
	b.WriteString("=== Search Results ===\n\n")
	fmt.Fprintf(&b, "Question: %s\n", query)
	fmt.Fprintf(&b, "Matched products: %d\n\n", len(products))

	for i, p := range products {
		fmt.Fprintf(&b, "[Product %d]\n", i+1)
		fmt.Fprintf(&b, "- Name: %s\n", p.Name)
		if p.Category != "" {
			fmt.Fprintf(&b, "- Category: %s\n", p.Category)
		}
		if p.Price != nil {
			fmt.Fprintf(&b, "- Price: %.0f\n", *p.Price)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "- Description: %s\n", p.Description)
		}
		if p.Stock != nil {
			fmt.Fprintf(&b, "- Stock: %d\n", *p.Stock)
		}
		if p.Score != nil {
			fmt.Fprintf(&b, "- Score: %.4f\n", *p.Score)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// GuideContext formats retrieved support guides, preceded by the order
// snapshot prologue when one is available.
func GuideContext(query string, guides []models.Guide, snapshot *models.OrderSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Agent inquiry: %s\n\n", query)

	if snapshot != nil {
		b.WriteString(snapshot.Summary())
		b.WriteString("\n")
	}

	if len(guides) == 0 {
		b.WriteString(NoGuideResults)
		return b.String()
	}

	fmt.Fprintf(&b, "Matched support guides: %d\n\n", len(guides))

	for i, g := range guides {
		fmt.Fprintf(&b, "%d. %s (ID: %s)\n", i+1, g.Name, g.GuideID)
		if g.BrowseCount != nil {
			fmt.Fprintf(&b, "   Views: %d\n", *g.BrowseCount)
		}
		if g.Score != nil {
			fmt.Fprintf(&b, "   Score: %.2f%%\n", *g.Score*100)
		}

		if props := renderableProperties(g.Properties); len(props) > 0 {
			b.WriteString("   \n")
			b.WriteString("   [Guide Details]\n")
			for _, prop := range props {
				fmt.Fprintf(&b, "   %s:\n", PropertyLabel(prop.TypeCode))
				content := strings.TrimSpace(strings.ReplaceAll(prop.Content, "\n", "\n   "))
				b.WriteString("   " + content + "\n")
				b.WriteString("   \n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PropertyLabel maps a guide property type code to its display label.
func PropertyLabel(typeCode string) string {
	switch typeCode {
	case "001":
		return "Processing method"
	case "002":
		return "Caution"
	case "003":
		return "Customer script"
	case "004":
		return "Additional info"
	default:
		return "Content"
	}
}

// renderableProperties drops placeholder-only content. A bare "." is how
// the source system marks an intentionally empty field.
func renderableProperties(props []models.GuideProperty) []models.GuideProperty {
	out := make([]models.GuideProperty, 0, len(props))
	for _, p := range props {
		trimmed := strings.TrimSpace(p.Content)
		if trimmed == "" || trimmed == "." {
			continue
		}
		out = append(out, p)
	}
	return out
}
