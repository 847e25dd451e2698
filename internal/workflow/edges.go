package workflow

import (
	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
)

// GuardKind tags the business condition attached to an edge. Guards are a
// fixed enumeration evaluated by evaluateGuard rather than executable values
// embedded in the table, so the rule set stays auditable and serializable.
type GuardKind string

const (
	GuardNone                GuardKind = "none"
	GuardRequiresHeritage    GuardKind = "requires_heritage"
	GuardRequiresNonHeritage GuardKind = "requires_non_heritage"
)

// Edge is one allowed (from, to) pair with its required roles and guard.
type Edge struct {
	From  models.Status
	To    models.Status
	Roles []id.Role
	Guard GuardKind
}

type edgeKey struct {
	from models.Status
	to   models.Status
}

// edges is the complete transition table. rejected and needs_revision carry
// no edges on purpose: they are reserved states, and the engine answers
// invalid-transition for anything touching them.
var edges = map[edgeKey]Edge{
	// Re-submission after a revision request. A real edge, not a retry no-op:
	// every resubmission is a fresh attempt with its own ledger entry.
	{models.StatusPending, models.StatusPending}: {
		From:  models.StatusPending,
		To:    models.StatusPending,
		Roles: []id.Role{id.RoleParishSecretary},
		Guard: GuardNone,
	},
	// Direct approval is only for churches the classifier clears; a heritage
	// church cannot skip review even when the actor could approve directly.
	{models.StatusPending, models.StatusApproved}: {
		From:  models.StatusPending,
		To:    models.StatusApproved,
		Roles: []id.Role{id.RoleChanceryOffice},
		Guard: GuardRequiresNonHeritage,
	},
	{models.StatusPending, models.StatusHeritageReview}: {
		From:  models.StatusPending,
		To:    models.StatusHeritageReview,
		Roles: []id.Role{id.RoleChanceryOffice},
		Guard: GuardRequiresHeritage,
	},
	{models.StatusHeritageReview, models.StatusApproved}: {
		From:  models.StatusHeritageReview,
		To:    models.StatusApproved,
		Roles: []id.Role{id.RoleMuseumResearcher},
		Guard: GuardNone,
	},
	// Re-evaluation pulls an approved church back into review.
	{models.StatusApproved, models.StatusHeritageReview}: {
		From:  models.StatusApproved,
		To:    models.StatusHeritageReview,
		Roles: []id.Role{id.RoleChanceryOffice, id.RoleMuseumResearcher},
		Guard: GuardNone,
	},
}

func edgeFor(from, to models.Status) (Edge, bool) {
	edge, ok := edges[edgeKey{from, to}]
	return edge, ok
}

func (e Edge) allowsRole(role id.Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// evaluateGuard dispatches on the guard kind against a freshly recomputed
// classification. Unknown kinds fail closed.
func evaluateGuard(kind GuardKind, c models.Classification) bool {
	switch kind {
	case GuardNone:
		return true
	case GuardRequiresHeritage:
		return c.IsHeritage
	case GuardRequiresNonHeritage:
		return !c.IsHeritage
	}
	return false
}
