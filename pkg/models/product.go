package models

// Product represents a catalog item returned by similarity search
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    string   `json:"category,omitempty"`
	Stock       *int     `json:"stock,omitempty"`

	// Score is the relevance score assigned by the search backend.
	// Results arrive ordered descending by score; nil when not scored.
	Score *float64 `json:"score,omitempty"`
}
