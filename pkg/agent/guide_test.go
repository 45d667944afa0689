package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megasoby/shop-agent/pkg/history"
	"github.com/megasoby/shop-agent/pkg/llm"
	"github.com/megasoby/shop-agent/pkg/models"
	"github.com/megasoby/shop-agent/pkg/search"
)

type fakeGuideSearcher struct {
	guides       []models.Guide
	err          error
	searchCalls  int
	keywordCalls int
	lastQuery    string
	lastTopK     int
}

func (f *fakeGuideSearcher) Search(_ context.Context, query string, topK int) ([]models.Guide, error) {
	f.searchCalls++
	f.lastQuery = query
	f.lastTopK = topK
	return f.guides, f.err
}

func (f *fakeGuideSearcher) KeywordSearch(_ context.Context, query string, topK int) ([]models.Guide, error) {
	f.keywordCalls++
	f.lastQuery = query
	f.lastTopK = topK
	return f.guides, f.err
}

// fakeChatter is a provider that also exposes the raw chat capability.
type fakeChatter struct {
	answer     string
	err        error
	chatCalls  int
	lastSystem string
	lastUser   string
}

func (f *fakeChatter) Generate(_ context.Context, _, _ string, _ []models.Product) (string, error) {
	return f.answer, f.err
}

func (f *fakeChatter) Chat(_ context.Context, system, user string) (string, error) {
	f.chatCalls++
	f.lastSystem = system
	f.lastUser = user
	return f.answer, f.err
}

type fakeOrderStore struct {
	snapshot *models.OrderSnapshot
	err      error
	calls    int
	lastNo   string
	lastSeq  int
}

func (f *fakeOrderStore) Lookup(_ context.Context, orderNo string, lineSeq int) (*models.OrderSnapshot, error) {
	f.calls++
	f.lastNo = orderNo
	f.lastSeq = lineSeq
	return f.snapshot, f.err
}

func someGuides() []models.Guide {
	return []models.Guide{
		{GuideID: "g-1", Name: "Refund processing"},
		{GuideID: "g-2", Name: "Exchange policy"},
	}
}

func TestGuideSearchWithChatter(t *testing.T) {
	searcher := &fakeGuideSearcher{guides: someGuides()}
	chatter := &fakeChatter{answer: "summarized guidance"}
	hist := history.NewStore()
	a := NewGuideAgent(searcher, chatter, nil, hist, zerolog.Nop())

	got, err := a.Search(context.Background(), GuideRequest{Query: "refund window", UserID: "agent-7"})

	require.NoError(t, err)
	assert.Equal(t, "summarized guidance", got.Answer)
	assert.Len(t, got.Guides, 2)
	assert.Equal(t, 1, chatter.chatCalls)
	assert.Contains(t, chatter.lastUser, "refund window")
	assert.Contains(t, chatter.lastUser, "=== Retrieved support guides ===")
	assert.NotContains(t, chatter.lastSystem, "An order is attached")

	turns := hist.Get("agent-7")
	require.Len(t, turns, 1)
	assert.Equal(t, "summarized guidance", turns[0].Answer)
	assert.Equal(t, 2, turns[0].RetrievedCount)
}

func TestGuideSearchWithoutChatterReturnsContext(t *testing.T) {
	searcher := &fakeGuideSearcher{guides: someGuides()}
	hist := history.NewStore()
	a := NewGuideAgent(searcher, llm.NewMockProvider(), nil, hist, zerolog.Nop())

	got, err := a.Search(context.Background(), GuideRequest{Query: "refund window", UserID: "agent-7"})

	require.NoError(t, err)
	assert.Equal(t, got.Context, got.Answer)
	assert.Contains(t, got.Answer, "Refund processing")
	require.Len(t, hist.Get("agent-7"), 1)
}

func TestGuideSearchNoGuidesSkipsGeneration(t *testing.T) {
	searcher := &fakeGuideSearcher{}
	chatter := &fakeChatter{answer: "should not be called"}
	a := NewGuideAgent(searcher, chatter, nil, history.NewStore(), zerolog.Nop())

	got, err := a.Search(context.Background(), GuideRequest{Query: "anything"})

	require.NoError(t, err)
	assert.Zero(t, chatter.chatCalls)
	assert.Equal(t, got.Context, got.Answer)
}

func TestGuideSearchBlankQuery(t *testing.T) {
	searcher := &fakeGuideSearcher{}
	a := NewGuideAgent(searcher, llm.NewMockProvider(), nil, history.NewStore(), zerolog.Nop())

	_, err := a.Search(context.Background(), GuideRequest{Query: "   "})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, searcher.searchCalls)
}

func TestGuideSearchRetrievalFailureIsFatal(t *testing.T) {
	searcher := &fakeGuideSearcher{err: &search.RetrievalError{Op: "guide", Err: errors.New("down")}}
	hist := history.NewStore()
	a := NewGuideAgent(searcher, llm.NewMockProvider(), nil, hist, zerolog.Nop())

	_, err := a.Search(context.Background(), GuideRequest{Query: "q"})

	var rErr *search.RetrievalError
	require.ErrorAs(t, err, &rErr)
	assert.Zero(t, hist.Stats().TotalTurns)
}

func TestGuideSearchOrderEnrichment(t *testing.T) {
	searcher := &fakeGuideSearcher{guides: someGuides()}
	chatter := &fakeChatter{answer: "ok"}
	orders := &fakeOrderStore{snapshot: &models.OrderSnapshot{
		OrderNo:     "ORD-1001",
		LineSeq:     1,
		StatusCode:  "140",
		StatusLabel: "Shipping",
		ItemName:    "UltraBook 14",
	}}
	a := NewGuideAgent(searcher, chatter, orders, history.NewStore(), zerolog.Nop())

	got, err := a.Search(context.Background(), GuideRequest{Query: "where is it", OrderNo: "ORD-1001", LineSeq: 0})

	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", orders.lastNo)
	// line sequence below 1 defaults to the first line
	assert.Equal(t, 1, orders.lastSeq)
	assert.Contains(t, got.Context, "=== Order Info ===")
	assert.Contains(t, chatter.lastSystem, "An order is attached")
	assert.Contains(t, chatter.lastUser, "=== What is possible in the current status ===")
}

func TestGuideSearchOrderLookupFailureDegrades(t *testing.T) {
	searcher := &fakeGuideSearcher{guides: someGuides()}
	orders := &fakeOrderStore{err: errors.New("no such order")}
	a := NewGuideAgent(searcher, llm.NewMockProvider(), orders, history.NewStore(), zerolog.Nop())

	got, err := a.Search(context.Background(), GuideRequest{Query: "refund", OrderNo: "ORD-404"})

	require.NoError(t, err)
	assert.Equal(t, 1, orders.calls)
	assert.NotContains(t, got.Context, "=== Order Info ===")
}

func TestGuideSearchNoOrderStore(t *testing.T) {
	searcher := &fakeGuideSearcher{guides: someGuides()}
	a := NewGuideAgent(searcher, llm.NewMockProvider(), nil, history.NewStore(), zerolog.Nop())

	got, err := a.Search(context.Background(), GuideRequest{Query: "refund", OrderNo: "ORD-1001"})

	require.NoError(t, err)
	assert.NotContains(t, got.Context, "=== Order Info ===")
}

func TestGuideTextSearch(t *testing.T) {
	searcher := &fakeGuideSearcher{guides: someGuides()}
	chatter := &fakeChatter{answer: "should not be called"}
	hist := history.NewStore()
	a := NewGuideAgent(searcher, chatter, nil, hist, zerolog.Nop())

	got, err := a.TextSearch(context.Background(), GuideRequest{Query: "refund", TopK: 3, UserID: "agent-7"})

	require.NoError(t, err)
	assert.Equal(t, 1, searcher.keywordCalls)
	assert.Zero(t, searcher.searchCalls)
	assert.Equal(t, 3, searcher.lastTopK)
	assert.Zero(t, chatter.chatCalls)
	assert.Equal(t, got.Context, got.Answer)
	// keyword mode records nothing
	assert.Zero(t, hist.Stats().TotalTurns)
}

func TestGuideTextSearchBlankQuery(t *testing.T) {
	a := NewGuideAgent(&fakeGuideSearcher{}, llm.NewMockProvider(), nil, history.NewStore(), zerolog.Nop())

	_, err := a.TextSearch(context.Background(), GuideRequest{Query: ""})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}
