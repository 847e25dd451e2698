// Package middleware holds the HTTP middleware chain: request metadata
// capture and actor authentication.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"simbahan/internal/actor/models"
	"simbahan/pkg/requestcontext"
)

type contextKeyActor struct{}

// ActorFrom retrieves the authenticated actor from the context, or nil for
// anonymous requests.
func ActorFrom(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(contextKeyActor{}).(*models.Actor)
	return actor
}

// WithActor injects an actor into the context. Exported for handler tests.
func WithActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, contextKeyActor{}, actor)
}

// RequestMetadata stamps every request with an id, its arrival time, the
// client IP, and a normalized client platform string derived from the
// User-Agent. The platform string ends up on transition records.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
		ctx = requestcontext.WithTime(ctx, time.Now())
		ctx = requestcontext.WithClientMetadata(ctx, clientIP(r), clientPlatform(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, ok := strings.Cut(forwarded, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func clientPlatform(r *http.Request) string {
	raw := r.UserAgent()
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	parts := make([]string, 0, 3)
	if name != "" {
		parts = append(parts, name)
	}
	if version != "" {
		parts = append(parts, version)
	}
	if os := ua.OSInfo().Name; os != "" {
		parts = append(parts, os)
	}
	if len(parts) == 0 {
		return raw
	}
	return strings.Join(parts, "/")
}
