// Package embedding converts free text into fixed-length numeric vectors
// used for similarity search. Implementations are selected once at startup.
package embedding

import "context"

// Embedder is the text-to-vector capability consumed by the search layer.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Error wraps a failure of the embedding collaborator.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "embedding failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
