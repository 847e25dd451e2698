package testutil

import (
	"net/http"
	"time"

	"simbahan/internal/actor/models"
	"simbahan/internal/platform/middleware"
	"simbahan/pkg/requestcontext"
)

// AsActor injects an actor into the request context, simulating what the
// auth middleware does for authenticated requests.
func AsActor(req *http.Request, actor *models.Actor) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

// AtTime pins the request-scoped clock, so handlers and services produce
// deterministic timestamps.
func AtTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithClient stamps client metadata the way the metadata middleware would.
func WithClient(req *http.Request, ip, platform string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, platform))
}
