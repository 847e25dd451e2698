// Package handler wires the church record endpoints to the church service
// and the public directory.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	actormodels "simbahan/internal/actor/models"
	"simbahan/internal/church/models"
	"simbahan/internal/church/service"
	churchstore "simbahan/internal/church/store/church"
	"simbahan/internal/platform/middleware"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/httputil"
	"simbahan/pkg/requestcontext"
)

// Service defines the church operations the handler needs.
type Service interface {
	Create(ctx context.Context, actor *actormodels.Actor, req service.CreateRequest) (*service.CreateResult, error)
	Get(ctx context.Context, actor *actormodels.Actor, parish id.ParishID) (*models.Church, error)
	UpdateProfile(ctx context.Context, actor *actormodels.Actor, req service.UpdateRequest) (*service.CreateResult, error)
	List(ctx context.Context, actor *actormodels.Actor, filter churchstore.Filter) ([]models.Church, error)
	Preview(ctx context.Context, p models.Profile) models.Classification
}

// Directory serves the cached anonymous read path.
type Directory interface {
	Approved(ctx context.Context) ([]models.Church, error)
}

// Handler wires church endpoints to the church service.
type Handler struct {
	service   Service
	directory Directory
	logger    *slog.Logger
}

func New(service Service, directory Directory, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		directory: directory,
		logger:    logger,
	}
}

// Register mounts church endpoints on the router. Authentication middleware
// is applied by the caller; these routes assume RequestMetadata ran.
func (h *Handler) Register(r chi.Router) {
	r.Post("/churches", h.HandleCreate)
	r.Get("/churches", h.HandleList)
	r.Get("/churches/{id}", h.HandleGet)
	r.Patch("/churches/{id}", h.HandleUpdate)
	r.Post("/classify", h.HandleClassify)
}

// HandleCreate handles POST /churches requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateChurchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	actor := middleware.ActorFrom(ctx)
	result, err := h.service.Create(ctx, actor, req.ToServiceRequest())
	if err != nil {
		h.logger.WarnContext(ctx, "church creation failed",
			"request_id", requestID,
			"parish", req.Parish,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "church created",
		"request_id", requestID,
		"church_id", result.Church.ID,
		"score", result.Classification.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromMutation(result))
}

// HandleGet handles GET /churches/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	parish, err := id.ParseParishID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	church, err := h.service.Get(ctx, middleware.ActorFrom(ctx), parish)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromChurch(church))
}

// HandleList handles GET /churches requests. Anonymous callers are served
// from the cached directory; authenticated ones get a live, role-scoped
// listing.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := middleware.ActorFrom(ctx)

	if actor == nil && h.directory != nil {
		churches, err := h.directory.Approved(ctx)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, FromChurches(churches))
		return
	}

	filter := churchstore.Filter{}
	if raw := r.URL.Query().Get("diocese"); raw != "" {
		diocese, err := id.ParseDiocese(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Diocese = diocese
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Status = status
	}

	churches, err := h.service.List(ctx, actor, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromChurches(churches))
}

// HandleUpdate handles PATCH /churches/{id} requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	parish, err := id.ParseParishID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateChurchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.UpdateProfile(ctx, middleware.ActorFrom(ctx), service.UpdateRequest{
		Parish:          parish,
		ExpectedVersion: req.ExpectedVersion,
		Profile:         req.Profile.Parsed(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "profile update failed",
			"request_id", requestID,
			"church_id", parish,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromMutation(result))
}

// HandleClassify handles POST /classify requests: a stateless scoring
// preview, open to any caller.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	classification := h.service.Preview(ctx, req.Profile.Parsed())
	httputil.WriteJSON(w, http.StatusOK, FromClassification(classification))
}
