package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUserID is the synthetic identity used when the caller supplies
// none. All anonymous callers share this history bucket.
const DefaultUserID = "default"

// ConversationTurn is one completed question/answer exchange. Turns are
// immutable once created and eventually evicted from history.
type ConversationTurn struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	RetrievedCount int       `json:"retrieved_count"`
	ElapsedMillis  int64     `json:"elapsed_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewConversationTurn creates a turn for the given user, assigning a fresh
// ID and timestamp. An empty userID falls back to DefaultUserID.
func NewConversationTurn(userID, question, answer string, retrievedCount int, elapsedMillis int64) ConversationTurn {
	if userID == "" {
		userID = DefaultUserID
	}
	return ConversationTurn{
		ID:             uuid.NewString(),
		UserID:         userID,
		Question:       question,
		Answer:         answer,
		RetrievedCount: retrievedCount,
		ElapsedMillis:  elapsedMillis,
		CreatedAt:      time.Now(),
	}
}
