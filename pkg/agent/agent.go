// Package agent composes retrieval, context assembly, generation, and
// history bookkeeping into the end-to-end question answering flows.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/megasoby/shop-agent/pkg/history"
	"github.com/megasoby/shop-agent/pkg/llm"
	"github.com/megasoby/shop-agent/pkg/models"
	"github.com/megasoby/shop-agent/pkg/ragctx"
	"github.com/megasoby/shop-agent/pkg/search"
)

// DefaultTopK is the retrieval bound applied whenever the caller leaves
// topK unset or below 1.
const DefaultTopK = 5

// ValidationError rejects a request before any collaborator is called.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid request: " + e.Reason }

// AskRequest is a product-discovery question.
type AskRequest struct {
	Question string
	TopK     int
	UserID   string
}

// ProductAnswer is the product flow's terminal output.
type ProductAnswer struct {
	Question      string           `json:"question"`
	Answer        string           `json:"answer"`
	Context       string           `json:"context"`
	Products      []models.Product `json:"products"`
	ElapsedMillis int64            `json:"elapsed_ms"`
}

// ProductAgent orchestrates the product-discovery flow: retrieval is
// load-bearing (its failure fails the request), generation is best-effort.
type ProductAgent struct {
	searcher   search.ProductSearcher
	provider   llm.Provider
	history    *history.Store
	ragEnabled bool
	log        zerolog.Logger
}

// NewProductAgent wires the product flow. ragEnabled toggles retrieval for
// the whole process.
func NewProductAgent(searcher search.ProductSearcher, provider llm.Provider, hist *history.Store, ragEnabled bool, log zerolog.Logger) *ProductAgent {
	return &ProductAgent{
		searcher:   searcher,
		provider:   provider,
		history:    hist,
		ragEnabled: ragEnabled,
		log:        log.With().Str("component", "agent").Logger(),
	}
}

// Answer runs one question end to end. A turn is recorded in history
// whenever an answer is produced, fallback answers included.
func (a *ProductAgent) Answer(ctx context.Context, req AskRequest) (*ProductAnswer, error) {
	start := time.Now()

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, &ValidationError{Reason: "question must not be blank"}
	}
	topK := normalizeTopK(req.TopK)

	a.log.Info().Str("question", question).Int("topK", topK).Msg("answering question")

	var products []models.Product
	ragContext := ""
	if a.ragEnabled {
		var err error
		products, err = a.searcher.Search(ctx, question, topK)
		if err != nil {
			a.log.Error().Err(err).Msg("product retrieval failed")
			return nil, err
		}
		ragContext = ragctx.ProductContext(question, products)
		a.log.Info().Int("count", len(products)).Msg("retrieval done")
	}

	answer, err := a.provider.Generate(ctx, question, ragContext, products)
	if err != nil {
		// Generation must not abort the request once retrieval succeeded.
		a.log.Error().Err(err).Msg("generation failed, falling back to raw context")
		answer = fmt.Sprintf("Sorry, answer generation failed: %v\n\n%s", err, ragContext)
	}

	elapsed := time.Since(start).Milliseconds()
	a.history.Save(models.NewConversationTurn(req.UserID, question, answer, len(products), elapsed))

	a.log.Info().Int64("elapsed_ms", elapsed).Msg("answer complete")

	return &ProductAnswer{
		Question:      question,
		Answer:        answer,
		Context:       ragContext,
		Products:      products,
		ElapsedMillis: elapsed,
	}, nil
}

func normalizeTopK(topK int) int {
	if topK < 1 {
		return DefaultTopK
	}
	return topK
}
