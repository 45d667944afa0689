// Package search provides similarity and keyword retrieval against the
// vector search backend. Results come back ranked descending by score and
// are never re-sorted here.
package search

import (
	"context"

	"github.com/megasoby/shop-agent/pkg/models"
)

// ProductSearcher retrieves catalog items similar to a free-text query.
type ProductSearcher interface {
	// Search embeds the query and runs a k-nearest-neighbor search,
	// returning at most topK products ordered descending by score.
	Search(ctx context.Context, query string, topK int) ([]models.Product, error)
}

// GuideSearcher retrieves support-guide entries for a free-text query.
type GuideSearcher interface {
	// Search embeds the query and runs a k-nearest-neighbor search.
	Search(ctx context.Context, query string, topK int) ([]models.Guide, error)

	// KeywordSearch matches the query text against guide name and content
	// without any embedding call.
	KeywordSearch(ctx context.Context, query string, topK int) ([]models.Guide, error)
}

// RetrievalError wraps a failure of the retrieval step, including the
// embedding call it depends on. The orchestration layer decides whether it
// is fatal for the flow at hand.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return "retrieval failed (" + e.Op + "): " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error { return e.Err }
