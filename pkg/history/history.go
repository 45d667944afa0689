// Package history keeps a bounded, per-user, in-memory log of completed
// conversation turns. Purely orchestration bookkeeping; nothing here is
// persisted.
package history

import (
	"sync"

	"github.com/megasoby/shop-agent/pkg/models"
)

// MaxHistorySize caps how many turns are retained per user. The oldest
// turn is dropped before a new one is appended, so the per-user count
// never exceeds this, even transiently.
const MaxHistorySize = 100

// Stats summarizes the store contents.
type Stats struct {
	TotalUsers int      `json:"totalUsers"`
	TotalTurns int      `json:"totalTurns"`
	UserIDs    []string `json:"userIds"`
}

// Store is a mutex-guarded map of userID to insertion-ordered turns.
// Safe for concurrent use; same-user saves are serialized so the eviction
// step cannot be skipped.
type Store struct {
	mu    sync.Mutex
	turns map[string][]models.ConversationTurn
}

// NewStore creates an empty history store.
func NewStore() *Store {
	return &Store{turns: make(map[string][]models.ConversationTurn)}
}

// Save appends a turn to its user's history, evicting the oldest turn
// first when the user is at capacity.
func (s *Store) Save(turn models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userTurns := s.turns[turn.UserID]
	if len(userTurns) >= MaxHistorySize {
		userTurns = userTurns[1:]
	}
	s.turns[turn.UserID] = append(userTurns, turn)
}

// Get returns all retained turns for the user in insertion order. The
// returned slice is a copy; mutating it cannot corrupt the store.
func (s *Store) Get(userID string) []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	userTurns := s.turns[userID]
	out := make([]models.ConversationTurn, len(userTurns))
	copy(out, userTurns)
	return out
}

// GetRecent returns up to limit most-recent turns in insertion order.
func (s *Store) GetRecent(userID string, limit int) []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	userTurns := s.turns[userID]
	if limit < 0 {
		limit = 0
	}
	if limit > len(userTurns) {
		limit = len(userTurns)
	}
	out := make([]models.ConversationTurn, limit)
	copy(out, userTurns[len(userTurns)-limit:])
	return out
}

// Clear removes all turns for the user.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, userID)
}

// Stats reports user and turn totals across the store.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		TotalUsers: len(s.turns),
		UserIDs:    make([]string, 0, len(s.turns)),
	}
	for userID, userTurns := range s.turns {
		stats.TotalTurns += len(userTurns)
		stats.UserIDs = append(stats.UserIDs, userID)
	}
	return stats
}
