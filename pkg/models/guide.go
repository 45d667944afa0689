package models

// GuideProperty is one typed sub-field of a support guide entry.
// TypeCode selects the display label during context assembly.
type GuideProperty struct {
	PropID   string `json:"prop_id,omitempty"`
	TypeCode string `json:"prop_type_cd,omitempty"`
	Seq      int    `json:"prop_seq,omitempty"`
	Content  string `json:"content,omitempty"`
}

// Guide represents a customer-support guide entry returned by search
type Guide struct {
	GuideID     string          `json:"guide_id"`
	Name        string          `json:"name"`
	BrowseCount *int            `json:"browse_count,omitempty"`
	Properties  []GuideProperty `json:"properties,omitempty"`
	FullContent string          `json:"full_content,omitempty"`

	// Score is the relevance score assigned by the search backend.
	Score *float64 `json:"score,omitempty"`
}
