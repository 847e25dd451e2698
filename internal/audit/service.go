package audit

import (
	"context"
	"errors"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/authz"
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
	"simbahan/pkg/platform/sentinel"
)

// ChurchReader resolves the church a trail belongs to, for the boundary
// check.
type ChurchReader interface {
	Get(ctx context.Context, parish id.ParishID) (*models.Church, error)
}

// Gate answers allow/deny for audit reads.
type Gate interface {
	Authorize(ctx context.Context, actor *actormodels.Actor, res authz.Resource, action authz.Action) error
}

// Service serves gated reads of the transition ledger. Writes never pass
// through here; the workflow engine and church store own those.
type Service struct {
	records  Store
	churches ChurchReader
	gate     Gate
}

func NewService(records Store, churches ChurchReader, gate Gate) *Service {
	return &Service{
		records:  records,
		churches: churches,
		gate:     gate,
	}
}

// Trail returns every transition record for a church, oldest first. Chancery
// offices read inside their diocese, museum researchers anywhere.
func (s *Service) Trail(ctx context.Context, actor *actormodels.Actor, parish id.ParishID) ([]TransitionRecord, error) {
	church, err := s.churches.Get(ctx, parish)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "church not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load church")
	}

	res := authz.Resource{Parish: church.ID, Diocese: church.Diocese, Status: church.Status}
	if err := s.gate.Authorize(ctx, actor, res, authz.ActionReadAudit); err != nil {
		return nil, err
	}

	records, err := s.records.ListByChurch(ctx, parish)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transition records")
	}
	return records, nil
}
