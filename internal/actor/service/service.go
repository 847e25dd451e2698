// Package service provisions and deactivates workflow actors. Only a
// chancery office may provision, only parish secretaries inside its own
// diocese, and actors are deactivated rather than deleted.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"simbahan/internal/actor/models"
	"simbahan/internal/authz"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
	"simbahan/pkg/platform/sentinel"
	"simbahan/pkg/requestcontext"
)

// Store is the actor repository.
type Store interface {
	Create(ctx context.Context, a *models.Actor) error
	Get(ctx context.Context, actorID id.ActorID) (*models.Actor, error)
	Update(ctx context.Context, a *models.Actor) error
}

// Gate answers allow/deny for the diocese boundary.
type Gate interface {
	Authorize(ctx context.Context, actor *models.Actor, res authz.Resource, action authz.Action) error
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

type Service struct {
	store  Store
	gate   Gate
	logger *slog.Logger
}

func New(store Store, gate Gate, opts ...Option) *Service {
	s := &Service{store: store, gate: gate}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProvisionRequest describes the secretary account a chancery office wants
// to create.
type ProvisionRequest struct {
	Diocese id.Diocese
	Parish  id.ParishID
	Secret  string
}

const minSecretLength = 12

// Provision creates a parish secretary actor with a bcrypt-hashed initial
// credential. The caller must be a chancery office of the target diocese.
func (s *Service) Provision(ctx context.Context, caller *models.Actor, req ProvisionRequest) (*models.Actor, error) {
	res := authz.Resource{Parish: req.Parish, Diocese: req.Diocese}
	if err := s.gate.Authorize(ctx, caller, res, authz.ActionProvision); err != nil {
		return nil, err
	}

	if len(req.Secret) < minSecretLength {
		return nil, dErrors.New(dErrors.CodeValidation, "initial secret is too short")
	}

	actor, err := models.NewActor(id.NewActorID(), id.RoleParishSecretary, req.Diocese, req.Parish, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash secret")
	}
	actor.SecretHash = hash

	if err := s.store.Create(ctx, actor); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "parish already has an active secretary")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create actor")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "actor provisioned",
			"actor_id", actor.ID,
			"role", actor.Role,
			"diocese", actor.Diocese,
			"parish", actor.Parish,
			"provisioned_by", caller.ID,
		)
	}
	return actor, nil
}

// Deactivate soft-disables an actor. The record stays for the audit trail;
// every subsequent call by the actor is denied.
func (s *Service) Deactivate(ctx context.Context, caller *models.Actor, actorID id.ActorID) error {
	target, err := s.store.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "actor not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load actor")
	}

	res := authz.Resource{Parish: target.Parish, Diocese: target.Diocese}
	if err := s.gate.Authorize(ctx, caller, res, authz.ActionProvision); err != nil {
		return err
	}

	if err := target.CanDeactivate(); err != nil {
		return err
	}
	target.ApplyDeactivation(requestcontext.Now(ctx))

	if err := s.store.Update(ctx, target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update actor")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "actor deactivated",
			"actor_id", target.ID,
			"deactivated_by", caller.ID,
		)
	}
	return nil
}

// Authenticate checks a presented secret against the stored hash and
// returns the live actor record.
func (s *Service) Authenticate(ctx context.Context, actorID id.ActorID, secret string) (*models.Actor, error) {
	actor, err := s.store.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthenticated, "unknown actor")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load actor")
	}
	if !actor.Active {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "actor is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword(actor.SecretHash, []byte(secret)); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "invalid credentials")
	}
	return actor, nil
}
