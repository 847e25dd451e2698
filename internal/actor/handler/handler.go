// Package handler wires actor provisioning and token issuance endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"simbahan/internal/actor/models"
	"simbahan/internal/actor/service"
	"simbahan/internal/platform/middleware"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/httputil"
	"simbahan/pkg/requestcontext"
)

const tokenLifetime = 8 * time.Hour

// Service defines the actor operations the handler needs.
type Service interface {
	Provision(ctx context.Context, caller *models.Actor, req service.ProvisionRequest) (*models.Actor, error)
	Deactivate(ctx context.Context, caller *models.Actor, actorID id.ActorID) error
	Authenticate(ctx context.Context, actorID id.ActorID, secret string) (*models.Actor, error)
}

// TokenIssuer signs actor access tokens.
type TokenIssuer interface {
	GenerateAccessToken(actorID id.ActorID, role id.Role, diocese id.Diocese, parish id.ParishID, expiresIn time.Duration) (string, error)
}

type Handler struct {
	service Service
	tokens  TokenIssuer
	logger  *slog.Logger
}

func New(service Service, tokens TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

// RegisterAdmin mounts the provisioning endpoints; the caller wraps them in
// the authenticated middleware chain.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/actors", h.HandleProvision)
	r.Delete("/admin/actors/{id}", h.HandleDeactivate)
}

// RegisterAuth mounts the credential exchange endpoint, open to anonymous
// callers.
func (h *Handler) RegisterAuth(r chi.Router) {
	r.Post("/auth/token", h.HandleToken)
}

// HandleProvision handles POST /admin/actors requests.
func (h *Handler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ProvisionActorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	caller := middleware.ActorFrom(ctx)
	actor, err := h.service.Provision(ctx, caller, req.ToServiceRequest())
	if err != nil {
		h.logger.WarnContext(ctx, "actor provisioning failed",
			"request_id", requestID,
			"diocese", req.Diocese,
			"parish", req.Parish,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "actor provisioned",
		"request_id", requestID,
		"actor_id", actor.ID,
		"parish", actor.Parish,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromActor(actor))
}

// HandleDeactivate handles DELETE /admin/actors/{id} requests.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, err := id.ParseActorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Deactivate(ctx, middleware.ActorFrom(ctx), actorID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToken handles POST /auth/token requests: exchanging an actor id and
// secret for a bearer token.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	actor, err := h.service.Authenticate(ctx, req.ParsedActorID(), req.Secret)
	if err != nil {
		h.logger.WarnContext(ctx, "token exchange failed",
			"request_id", requestID,
			"actor_id", req.ActorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	signed, err := h.tokens.GenerateAccessToken(actor.ID, actor.Role, actor.Diocese, actor.Parish, tokenLifetime)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenLifetime.Seconds()),
	})
}
