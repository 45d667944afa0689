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
	"github.com/megasoby/shop-agent/pkg/order"
	"github.com/megasoby/shop-agent/pkg/ragctx"
	"github.com/megasoby/shop-agent/pkg/search"
)

// GuideRequest is a support-guide query, optionally tied to an order line
// for enrichment. LineSeq below 1 defaults to the first line.
type GuideRequest struct {
	Query   string
	TopK    int
	OrderNo string
	LineSeq int
	UserID  string
}

// GuideAnswer is the guide flow's terminal output.
type GuideAnswer struct {
	Query         string         `json:"query"`
	Answer        string         `json:"answer"`
	Context       string         `json:"context"`
	Guides        []models.Guide `json:"guides"`
	ElapsedMillis int64          `json:"elapsed_ms"`
}

// GuideAgent orchestrates the support-guidance flow. Order enrichment is
// best-effort; guide retrieval is load-bearing. Generation happens only
// when the configured provider exposes the raw chat capability, otherwise
// the assembled context itself is the answer.
type GuideAgent struct {
	searcher search.GuideSearcher
	provider llm.Provider
	orders   order.Store
	history  *history.Store
	log      zerolog.Logger
}

// NewGuideAgent wires the guide flow. orders may be nil when no order
// database is configured; enrichment is then skipped entirely.
func NewGuideAgent(searcher search.GuideSearcher, provider llm.Provider, orders order.Store, hist *history.Store, log zerolog.Logger) *GuideAgent {
	return &GuideAgent{
		searcher: searcher,
		provider: provider,
		orders:   orders,
		history:  hist,
		log:      log.With().Str("component", "guide-agent").Logger(),
	}
}

// Search runs the guide flow end to end: optional order lookup, vector
// retrieval, context assembly, generation, history bookkeeping.
func (a *GuideAgent) Search(ctx context.Context, req GuideRequest) (*GuideAnswer, error) {
	start := time.Now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &ValidationError{Reason: "query must not be blank"}
	}
	topK := normalizeTopK(req.TopK)

	a.log.Info().Str("query", query).Int("topK", topK).Str("order_no", req.OrderNo).Msg("guide search")

	snapshot := a.lookupOrder(ctx, req)

	guides, err := a.searcher.Search(ctx, query, topK)
	if err != nil {
		a.log.Error().Err(err).Msg("guide retrieval failed")
		return nil, err
	}

	ragContext := ragctx.GuideContext(query, guides, snapshot)

	answer := ragContext
	if chatter, ok := a.provider.(llm.Chatter); ok && len(guides) > 0 {
		text, chatErr := chatter.Chat(ctx, guideSystemPrompt(snapshot != nil), guideUserPrompt(query, ragContext, snapshot))
		if chatErr != nil {
			a.log.Error().Err(chatErr).Msg("guide generation failed, falling back to raw context")
			answer = fmt.Sprintf("Sorry, answer generation failed: %v\n\n%s", chatErr, ragContext)
		} else {
			answer = text
		}
	}

	elapsed := time.Since(start).Milliseconds()
	a.history.Save(models.NewConversationTurn(req.UserID, query, answer, len(guides), elapsed))

	a.log.Info().Int("count", len(guides)).Int64("elapsed_ms", elapsed).Msg("guide search complete")

	return &GuideAnswer{
		Query:         query,
		Answer:        answer,
		Context:       ragContext,
		Guides:        guides,
		ElapsedMillis: elapsed,
	}, nil
}

// TextSearch is the plain keyword mode: no embedding, no generation, no
// history. The assembled context is returned as the answer.
func (a *GuideAgent) TextSearch(ctx context.Context, req GuideRequest) (*GuideAnswer, error) {
	start := time.Now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &ValidationError{Reason: "query must not be blank"}
	}
	topK := normalizeTopK(req.TopK)

	a.log.Info().Str("query", query).Int("topK", topK).Msg("guide text search")

	guides, err := a.searcher.KeywordSearch(ctx, query, topK)
	if err != nil {
		a.log.Error().Err(err).Msg("guide keyword search failed")
		return nil, err
	}

	ragContext := ragctx.GuideContext(query, guides, nil)
	elapsed := time.Since(start).Milliseconds()

	return &GuideAnswer{
		Query:         query,
		Answer:        ragContext,
		Context:       ragContext,
		Guides:        guides,
		ElapsedMillis: elapsed,
	}, nil
}

// lookupOrder fetches the order snapshot when the request names one.
// Failures degrade to "no snapshot", never to a failed request.
func (a *GuideAgent) lookupOrder(ctx context.Context, req GuideRequest) *models.OrderSnapshot {
	if req.OrderNo == "" || a.orders == nil {
		return nil
	}
	seq := req.LineSeq
	if seq < 1 {
		seq = 1
	}
	snapshot, err := a.orders.Lookup(ctx, req.OrderNo, seq)
	if err != nil {
		a.log.Warn().Str("order_no", req.OrderNo).Int("line_seq", seq).Err(err).Msg("order enrichment skipped")
		return nil
	}
	a.log.Info().Str("status", snapshot.StatusLabel).Str("item", snapshot.ItemName).Msg("order enrichment attached")
	return snapshot
}

func guideSystemPrompt(hasOrder bool) string {
	if hasOrder {
		return `You are a friendly, professional customer-support assistant.

Role:
- Summarize the support guides so a human agent can resolve the inquiry.
- An order is attached: tailor the guidance to its current status.

Response guide:
1. Summarize the order status first and what can be done right now.
2. Lay out the concrete handling steps from the support guides.
3. Include any customer-facing script the agent should read out.
4. Call out cautions explicitly.`
	}
	return `You are a friendly, professional customer-support assistant.

Role:
- Summarize the support guides so a human agent can resolve the inquiry.
- Base your guidance on the retrieved support guides.

Response guide:
1. Lead with the key takeaway.
2. Lay out step-by-step handling where the guides describe one.
3. Include any customer-facing script the agent should read out.
4. Call out cautions explicitly.`
}

func guideUserPrompt(query, ragContext string, snapshot *models.OrderSnapshot) string {
	var b strings.Builder

	b.WriteString("=== Agent inquiry ===\n")
	b.WriteString(query + "\n\n")

	if snapshot != nil {
		b.WriteString(snapshot.Summary() + "\n")
		if guidance := order.StatusGuidance(snapshot.StatusCode); guidance != "" {
			b.WriteString("=== What is possible in the current status ===\n")
			b.WriteString(guidance + "\n\n")
		}
	}

	b.WriteString("=== Retrieved support guides ===\n")
	b.WriteString(ragContext + "\n\n")
	b.WriteString("Write a helpful answer for the support agent based on the above.")
	return b.String()
}
