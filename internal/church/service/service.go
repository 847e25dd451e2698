// Package service holds the church record operations: creation, gated
// reads, profile updates with re-scoring, and directory listing. Status is
// out of scope here; only the workflow engine moves it.
package service

import (
	"context"
	"log/slog"
	"time"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/authz"
	churchmetrics "simbahan/internal/church/metrics"
	"simbahan/internal/church/models"
	churchstore "simbahan/internal/church/store/church"
	id "simbahan/pkg/domain"
)

// Store is the church repository the service depends on. Mutations carry the
// caller's version token; the store rejects stale ones.
type Store interface {
	Create(ctx context.Context, c *models.Church) error
	Get(ctx context.Context, parish id.ParishID) (*models.Church, error)
	List(ctx context.Context, filter churchstore.Filter) ([]models.Church, error)
	UpdateProfile(ctx context.Context, parish id.ParishID, expectedVersion int64, profile models.Profile, now time.Time) (*models.Church, error)
}

// Classifier scores profiles at creation and update time so callers see the
// classification their submission earns.
type Classifier interface {
	Classify(p models.Profile) models.Classification
}

// Gate answers allow/deny for the diocese/parish boundary.
type Gate interface {
	Authorize(ctx context.Context, actor *actormodels.Actor, res authz.Resource, action authz.Action) error
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *churchmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// Service implements the church record operations.
type Service struct {
	store      Store
	classifier Classifier
	gate       Gate
	logger     *slog.Logger
	metrics    *churchmetrics.Metrics
}

func New(store Store, classifier Classifier, gate Gate, opts ...Option) *Service {
	s := &Service{
		store:      store,
		classifier: classifier,
		gate:       gate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
