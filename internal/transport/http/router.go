// Package httptransport assembles the chi router from the feature handlers
// and the middleware chain. It holds no business logic.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	actorhandler "simbahan/internal/actor/handler"
	churchhandler "simbahan/internal/church/handler"
	"simbahan/internal/platform/middleware"
	workflowhandler "simbahan/internal/workflow/handler"
	"simbahan/pkg/platform/httputil"
)

// HealthCheck reports the health of one dependency.
type HealthCheck func(ctx context.Context) error

// Deps carries everything the router mounts.
type Deps struct {
	Logger *slog.Logger

	Tokens middleware.TokenValidator
	Actors middleware.ActorStore

	Church   *churchhandler.Handler
	Workflow *workflowhandler.Handler
	Actor    *actorhandler.Handler

	HealthChecks map[string]HealthCheck
}

// NewRouter builds the full route tree. Read endpoints accept anonymous
// callers (the services scope what they see); everything that mutates
// requires an authenticated actor.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestMetadata)

	r.Get("/healthz", handleHealth(deps.HealthChecks))
	r.Handle("/metrics", promhttp.Handler())

	deps.Actor.RegisterAuth(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalActor(deps.Tokens, deps.Actors, deps.Logger))
		deps.Church.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(deps.Tokens, deps.Actors, deps.Logger))
		deps.Workflow.Register(r)
		deps.Actor.RegisterAdmin(r)
	})

	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		out := make(map[string]string, len(checks)+1)
		out["status"] = "ok"
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				out[name] = err.Error()
				out["status"] = "degraded"
				continue
			}
			out[name] = "ok"
		}
		httputil.WriteJSON(w, status, out)
	}
}
