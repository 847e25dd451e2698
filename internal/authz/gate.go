// Package authz is the single policy-evaluation point for the service. Every
// mutating path — church CRUD, actor provisioning, and each workflow
// transition — asks the Gate for an allow/deny before touching state. There
// is deliberately no second enforcement layer in the core; keeping one gate
// avoids the policy drift that comes from duplicating checks per caller.
package authz

import (
	"context"
	"log/slog"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
)

// Action is an operation class a caller wants to perform on a resource.
type Action string

const (
	ActionRead       Action = "read"
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionTransition Action = "transition"
	ActionReadAudit  Action = "read_audit"
	ActionProvision  Action = "provision_actor"
)

// Resource describes the target of an action. Parish and Diocese carry the
// tenancy boundary; Status matters only for anonymous reads.
type Resource struct {
	Parish  id.ParishID
	Diocese id.Diocese
	Status  models.Status
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

// Gate evaluates (actor, resource, action) triples. It is stateless; all
// facts come from the actor profile and the resource descriptor.
type Gate struct {
	logger *slog.Logger
}

func New(opts ...Option) *Gate {
	g := &Gate{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize returns nil when the actor may perform the action on the
// resource.
//
// Errors: CodeUnauthorized when the role cannot perform the action at all;
// CodeForbidden when the role could, but the diocese or parish boundary is
// crossed. The boundary check is unconditional — no role seniority overrides
// it.
func (g *Gate) Authorize(ctx context.Context, actor *actormodels.Actor, res Resource, action Action) error {
	if actor == nil || actor.Role == id.RolePublic {
		return g.authorizeAnonymous(res, action)
	}
	if !actor.Active {
		return g.deny(ctx, actor, res, action,
			dErrors.New(dErrors.CodeUnauthorized, "actor is deactivated"))
	}

	var err error
	switch actor.Role {
	case id.RoleChanceryOffice:
		err = authorizeChancery(actor, res, action)
	case id.RoleMuseumResearcher:
		err = authorizeMuseum(actor, res, action)
	case id.RoleParishSecretary:
		err = authorizeSecretary(actor, res, action)
	default:
		err = dErrors.New(dErrors.CodeUnauthorized, "unknown role")
	}
	if err != nil {
		return g.deny(ctx, actor, res, action, err)
	}
	return nil
}

// authorizeAnonymous covers unauthenticated callers and the public role:
// read-only, and only where the record is already approved.
func (g *Gate) authorizeAnonymous(res Resource, action Action) error {
	if action != ActionRead {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if res.Status != models.StatusApproved {
		return dErrors.New(dErrors.CodeUnauthorized, "only approved records are public")
	}
	return nil
}

// authorizeChancery grants full read/write inside the actor's own diocese,
// including provisioning of parish secretaries. Church creation stays with
// parish secretaries; cross-diocese writes are never allowed.
func authorizeChancery(actor *actormodels.Actor, res Resource, action Action) error {
	switch action {
	case ActionRead, ActionUpdate, ActionTransition, ActionReadAudit, ActionProvision:
		if res.Diocese != actor.Diocese {
			return dErrors.New(dErrors.CodeForbidden, "diocese boundary violation")
		}
		return nil
	case ActionCreate:
		return dErrors.New(dErrors.CodeUnauthorized, "church records are created by parish secretaries")
	}
	return dErrors.New(dErrors.CodeUnauthorized, "action not permitted for chancery office")
}

// authorizeMuseum grants cross-diocese reads (heritage research spans
// dioceses) but keeps writes inside the actor's own diocese: the workflow's
// diocese check is unconditional for every role.
func authorizeMuseum(actor *actormodels.Actor, res Resource, action Action) error {
	switch action {
	case ActionRead, ActionReadAudit:
		return nil
	case ActionUpdate, ActionTransition:
		if res.Diocese != actor.Diocese {
			return dErrors.New(dErrors.CodeForbidden, "diocese boundary violation")
		}
		return nil
	}
	return dErrors.New(dErrors.CodeUnauthorized, "action not permitted for museum researchers")
}

// authorizeSecretary scopes everything to the one church whose id equals the
// actor's assigned parish.
func authorizeSecretary(actor *actormodels.Actor, res Resource, action Action) error {
	switch action {
	case ActionRead, ActionCreate, ActionUpdate, ActionTransition:
		if res.Diocese != actor.Diocese {
			return dErrors.New(dErrors.CodeForbidden, "diocese boundary violation")
		}
		if res.Parish != actor.Parish {
			return dErrors.New(dErrors.CodeForbidden, "parish boundary violation")
		}
		return nil
	}
	return dErrors.New(dErrors.CodeUnauthorized, "action not permitted for parish secretaries")
}

func (g *Gate) deny(ctx context.Context, actor *actormodels.Actor, res Resource, action Action, err error) error {
	if g.logger != nil {
		g.logger.DebugContext(ctx, "authorization denied",
			"actor_id", actor.ID,
			"role", actor.Role,
			"action", action,
			"parish", res.Parish,
			"diocese", res.Diocese,
			"error", err,
		)
	}
	return err
}
