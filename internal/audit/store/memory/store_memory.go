package memory

import (
	"context"
	"sync"

	"simbahan/internal/audit"
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
)

// InMemoryStore keeps the append-only ledger in process memory. Entries are
// copied on read so callers can never mutate history.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.ParishID][]audit.TransitionRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.ParishID][]audit.TransitionRecord)}
}

func (s *InMemoryStore) Append(_ context.Context, rec audit.TransitionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ChurchID] = append(s.records[rec.ChurchID], rec)
	return nil
}

func (s *InMemoryStore) ListByChurch(_ context.Context, churchID id.ParishID) ([]audit.TransitionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.TransitionRecord{}, s.records[churchID]...), nil
}

func (s *InMemoryStore) LatestApplied(_ context.Context, churchID id.ParishID, to models.Status) (*audit.TransitionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.records[churchID]
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].Outcome == audit.OutcomeApplied && recs[i].ToStatus == to {
			rec := recs[i]
			return &rec, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
