package service

import (
	"context"
	"errors"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/authz"
	"simbahan/internal/church/models"
	churchstore "simbahan/internal/church/store/church"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
	"simbahan/pkg/platform/sentinel"
	"simbahan/pkg/requestcontext"
)

// CreateRequest carries a validated church submission.
type CreateRequest struct {
	Parish  id.ParishID
	Diocese id.Diocese
	Profile models.Profile
}

// CreateResult pairs the stored record with the classification its profile
// earned, so the submitter sees the likely review route up front.
type CreateResult struct {
	Church         *models.Church
	Classification models.Classification
}

// Create registers a new church record in status pending. Only a parish
// secretary of the target parish may create one, and a parish holds at most
// one record.
func (s *Service) Create(ctx context.Context, actor *actormodels.Actor, req CreateRequest) (*CreateResult, error) {
	res := authz.Resource{Parish: req.Parish, Diocese: req.Diocese}
	if err := s.gate.Authorize(ctx, actor, res, authz.ActionCreate); err != nil {
		return nil, err
	}

	church, err := models.NewChurch(req.Parish, req.Diocese, req.Profile, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, church); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "parish already has a church record")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create church")
	}

	classification := s.classifier.Classify(church.Profile)
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "church created",
			"church_id", church.ID,
			"diocese", church.Diocese,
			"actor_id", actor.ID,
			"score", classification.Score,
		)
	}

	return &CreateResult{Church: church, Classification: classification}, nil
}

// Get returns one church record if the caller may read it. Anonymous callers
// see approved records only.
func (s *Service) Get(ctx context.Context, actor *actormodels.Actor, parish id.ParishID) (*models.Church, error) {
	church, err := s.store.Get(ctx, parish)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "church not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load church")
	}

	res := authz.Resource{Parish: church.ID, Diocese: church.Diocese, Status: church.Status}
	if err := s.gate.Authorize(ctx, actor, res, authz.ActionRead); err != nil {
		// A denied read of an unapproved record reads the same as absence.
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) && actor == nil {
			return nil, dErrors.New(dErrors.CodeNotFound, "church not found")
		}
		return nil, err
	}
	return church, nil
}

// UpdateRequest is a profile update with the version token the caller read.
type UpdateRequest struct {
	Parish          id.ParishID
	ExpectedVersion int64
	Profile         models.Profile
}

// UpdateProfile replaces the descriptive profile and recomputes the
// classification. The status is untouched; a version mismatch rejects the
// write.
func (s *Service) UpdateProfile(ctx context.Context, actor *actormodels.Actor, req UpdateRequest) (*CreateResult, error) {
	church, err := s.store.Get(ctx, req.Parish)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "church not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load church")
	}

	res := authz.Resource{Parish: church.ID, Diocese: church.Diocese, Status: church.Status}
	if err := s.gate.Authorize(ctx, actor, res, authz.ActionUpdate); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProfile(ctx, req.Parish, req.ExpectedVersion, req.Profile, requestcontext.Now(ctx))
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "version token is stale")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "church not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}

	classification := s.classifier.Classify(updated.Profile)
	if s.metrics != nil {
		s.metrics.IncrementProfileUpdated()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "church profile updated",
			"church_id", updated.ID,
			"actor_id", actor.ID,
			"version", updated.Version,
			"score", classification.Score,
		)
	}
	return &CreateResult{Church: updated, Classification: classification}, nil
}

// List returns church records narrowed to what the caller may see: anonymous
// and parish secretary callers get approved records only, a chancery office
// its own diocese, a museum researcher everything.
func (s *Service) List(ctx context.Context, actor *actormodels.Actor, filter churchstore.Filter) ([]models.Church, error) {
	switch {
	case actor == nil || actor.Role == id.RolePublic || actor.Role == id.RoleParishSecretary:
		filter.Status = models.StatusApproved
	case actor.Role == id.RoleChanceryOffice:
		filter.Diocese = actor.Diocese
	case actor.Role == id.RoleMuseumResearcher:
		// Cross-diocese reads are part of the researcher's charter.
	default:
		return nil, dErrors.New(dErrors.CodeUnauthorized, "unknown role")
	}

	churches, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list churches")
	}
	return churches, nil
}

// Preview scores a profile without persisting anything. Open to any caller;
// it exposes no record data.
func (s *Service) Preview(_ context.Context, p models.Profile) models.Classification {
	return s.classifier.Classify(p)
}
