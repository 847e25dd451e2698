package handler

import (
	"time"

	"simbahan/internal/actor/models"
	"simbahan/internal/actor/service"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
)

// ProvisionActorRequest is the HTTP request body for POST /admin/actors.
type ProvisionActorRequest struct {
	Diocese string `json:"diocese"`
	Parish  string `json:"parish"`
	Secret  string `json:"secret"`

	parsedDiocese id.Diocese
	parsedParish  id.ParishID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ProvisionActorRequest) Validate() error {
	diocese, err := id.ParseDiocese(r.Diocese)
	if err != nil {
		return err
	}
	parish, err := id.ParseParishID(r.Parish)
	if err != nil {
		return err
	}
	if r.Secret == "" {
		return dErrors.New(dErrors.CodeValidation, "secret is required")
	}
	r.parsedDiocese = diocese
	r.parsedParish = parish
	return nil
}

func (r *ProvisionActorRequest) ToServiceRequest() service.ProvisionRequest {
	return service.ProvisionRequest{
		Diocese: r.parsedDiocese,
		Parish:  r.parsedParish,
		Secret:  r.Secret,
	}
}

// TokenRequest is the HTTP request body for POST /auth/token.
type TokenRequest struct {
	ActorID string `json:"actor_id"`
	Secret  string `json:"secret"`

	parsedActorID id.ActorID
}

func (r *TokenRequest) Validate() error {
	actorID, err := id.ParseActorID(r.ActorID)
	if err != nil {
		return err
	}
	if r.Secret == "" {
		return dErrors.New(dErrors.CodeValidation, "secret is required")
	}
	r.parsedActorID = actorID
	return nil
}

func (r *TokenRequest) ParsedActorID() id.ActorID {
	return r.parsedActorID
}

// ActorResponse is the wire form of an actor profile. The secret hash never
// leaves the service.
type ActorResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Diocese   string    `json:"diocese"`
	Parish    string    `json:"parish,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromActor(a *models.Actor) ActorResponse {
	return ActorResponse{
		ID:        a.ID.String(),
		Role:      a.Role.String(),
		Diocese:   a.Diocese.String(),
		Parish:    a.Parish.String(),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}

// TokenResponse is the HTTP response for POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
