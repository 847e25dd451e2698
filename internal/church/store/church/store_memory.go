// Package church persists church records. Both implementations share the
// contract the workflow engine depends on: CompareAndSwap writes the new
// status, the bumped version, and the transition record as one atomic unit,
// or fails without touching any of them.
package church

import (
	"context"
	"sync"
	"time"

	"simbahan/internal/audit"
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
)

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Diocese id.Diocese
	Status  models.Status
}

// InMemory keeps church records in process memory, guarded by a single mutex
// so compare-and-swap plus audit append happen in one critical section.
type InMemory struct {
	mu       sync.RWMutex
	churches map[id.ParishID]*models.Church
	audits   audit.Store
}

func NewInMemory(audits audit.Store) *InMemory {
	return &InMemory{
		churches: make(map[id.ParishID]*models.Church),
		audits:   audits,
	}
}

// Create stores a new church. Returns sentinel.ErrAlreadyUsed when the parish
// already has one; the existing record is left untouched.
func (s *InMemory) Create(_ context.Context, c *models.Church) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.churches[c.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.churches[c.ID] = copyChurch(c)
	return nil
}

func (s *InMemory) Get(_ context.Context, parish id.ParishID) (*models.Church, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.churches[parish]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyChurch(c), nil
}

func (s *InMemory) List(_ context.Context, filter Filter) ([]models.Church, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Church
	for _, c := range s.churches {
		if !filter.Diocese.IsZero() && c.Diocese != filter.Diocese {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *copyChurch(c))
	}
	return out, nil
}

// CompareAndSwap applies a status change guarded by the version token and
// appends the transition record under the same lock. A failed append leaves
// the church unchanged so a transition is never half applied.
func (s *InMemory) CompareAndSwap(ctx context.Context, parish id.ParishID, expectedVersion int64, to models.Status, rec audit.TransitionRecord) (*models.Church, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.churches[parish]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if current.Version != expectedVersion {
		return nil, sentinel.ErrConflict
	}

	next := copyChurch(current)
	next.ApplyStatus(to, rec.Timestamp)
	next.Version++

	if err := s.audits.Append(ctx, rec); err != nil {
		return nil, err
	}
	s.churches[parish] = next
	return copyChurch(next), nil
}

// UpdateProfile replaces the classifier-relevant fields under the same
// version token discipline as CompareAndSwap. Diocese and status are not
// reachable from here.
func (s *InMemory) UpdateProfile(_ context.Context, parish id.ParishID, expectedVersion int64, profile models.Profile, now time.Time) (*models.Church, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.churches[parish]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if current.Version != expectedVersion {
		return nil, sentinel.ErrConflict
	}

	next := copyChurch(current)
	next.ApplyProfile(profile, now)
	next.Version++
	s.churches[parish] = next
	return copyChurch(next), nil
}

func copyChurch(c *models.Church) *models.Church {
	dup := *c
	dup.Profile.Keywords = append([]string(nil), c.Profile.Keywords...)
	return &dup
}
