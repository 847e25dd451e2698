// Package handler exposes the transition endpoints: requesting a status
// change and reading a church's transition ledger.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/audit"
	"simbahan/internal/platform/middleware"
	"simbahan/internal/workflow"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/httputil"
	"simbahan/pkg/requestcontext"
)

// Engine is the workflow engine port.
type Engine interface {
	RequestTransition(ctx context.Context, actor *actormodels.Actor, req workflow.Request) (*workflow.Result, error)
}

// Trail serves gated ledger reads.
type Trail interface {
	Trail(ctx context.Context, actor *actormodels.Actor, parish id.ParishID) ([]audit.TransitionRecord, error)
}

type Handler struct {
	engine Engine
	trail  Trail
	logger *slog.Logger
}

func New(engine Engine, trail Trail, logger *slog.Logger) *Handler {
	return &Handler{
		engine: engine,
		trail:  trail,
		logger: logger,
	}
}

// Register mounts the transition endpoints. Both require an authenticated
// actor; the caller applies that middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/churches/{id}/transitions", h.HandleRequestTransition)
	r.Get("/churches/{id}/transitions", h.HandleTrail)
}

// HandleRequestTransition handles POST /churches/{id}/transitions requests.
// Business rejections come back as 200 with outcome "rejected": the attempt
// itself succeeded and was recorded.
func (h *Handler) HandleRequestTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	parish, err := id.ParseParishID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[TransitionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	actor := middleware.ActorFrom(ctx)
	result, err := h.engine.RequestTransition(ctx, actor, workflow.Request{
		ChurchID:        parish,
		ExpectedVersion: req.ExpectedVersion,
		Target:          req.ParsedTarget(),
		Notes:           req.Notes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "transition request failed",
			"request_id", requestID,
			"church_id", parish,
			"target_status", req.Target,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "transition request evaluated",
		"request_id", requestID,
		"church_id", parish,
		"target_status", req.Target,
		"outcome", result.Outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleTrail handles GET /churches/{id}/transitions requests.
func (h *Handler) HandleTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	parish, err := id.ParseParishID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.trail.Trail(ctx, middleware.ActorFrom(ctx), parish)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}
