package models

import (
	"time"

	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
)

// Actor is a user profile participating in the publication workflow.
//
// Invariants:
//   - Role is one of the supported roles
//   - Diocese is required for every role except public
//   - Parish is required for parish_secretary and empty for everyone else
//   - A deactivated actor (Active=false) is denied everything; profiles are
//     never hard-deleted
type Actor struct {
	ID         id.ActorID  `json:"id"`
	Role       id.Role     `json:"role"`
	Diocese    id.Diocese  `json:"diocese"`
	Parish     id.ParishID `json:"parish,omitempty"`
	SecretHash []byte      `json:"-"`
	Active     bool        `json:"active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewActor constructs an active actor, enforcing the role/scope invariants.
func NewActor(actorID id.ActorID, role id.Role, diocese id.Diocese, parish id.ParishID, now time.Time) (*Actor, error) {
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid role")
	}
	if role != id.RolePublic && diocese.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "diocese is required")
	}
	switch role {
	case id.RoleParishSecretary:
		if parish.IsZero() {
			return nil, dErrors.New(dErrors.CodeValidation, "parish is required for parish secretaries")
		}
	default:
		if !parish.IsZero() {
			return nil, dErrors.New(dErrors.CodeValidation, "only parish secretaries carry a parish assignment")
		}
	}
	return &Actor{
		ID:        actorID,
		Role:      role,
		Diocese:   diocese,
		Parish:    parish,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanDeactivate checks the actor is still active.
func (a *Actor) CanDeactivate() error {
	if !a.Active {
		return dErrors.New(dErrors.CodeInvariantViolation, "actor is already deactivated")
	}
	return nil
}

// ApplyDeactivation flips the active flag. Call CanDeactivate first.
func (a *Actor) ApplyDeactivation(now time.Time) {
	a.Active = false
	a.UpdatedAt = now
}
