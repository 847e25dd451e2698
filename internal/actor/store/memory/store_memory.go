// Package memory is the in-memory actor store used in tests and dev mode.
package memory

import (
	"context"
	"sync"

	"simbahan/internal/actor/models"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
)

// InMemoryStore keeps actors in a map guarded by one mutex. Parish
// secretary uniqueness per parish is enforced inside the same critical
// section as the insert.
type InMemoryStore struct {
	mu     sync.RWMutex
	actors map[id.ActorID]*models.Actor
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{actors: make(map[id.ActorID]*models.Actor)}
}

// Create inserts a new actor. For parish secretaries the parish must not
// already have an active secretary; sentinel.ErrAlreadyUsed reports either
// collision.
func (s *InMemoryStore) Create(_ context.Context, a *models.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actors[a.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if a.Role == id.RoleParishSecretary {
		for _, existing := range s.actors {
			if existing.Role == id.RoleParishSecretary && existing.Parish == a.Parish && existing.Active {
				return sentinel.ErrAlreadyUsed
			}
		}
	}

	cp := *a
	s.actors[a.ID] = &cp
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, actorID id.ActorID) (*models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.actors[actorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// Update overwrites an existing actor record.
func (s *InMemoryStore) Update(_ context.Context, a *models.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actors[a.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *a
	s.actors[a.ID] = &cp
	return nil
}
