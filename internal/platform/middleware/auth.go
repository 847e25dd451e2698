package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"simbahan/internal/actor/models"
	"simbahan/internal/token"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
	"simbahan/pkg/platform/httputil"
	"simbahan/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

// ActorStore looks up live actor records. The token only identifies the
// actor; role, scope, and the active flag are always read fresh so
// deactivation takes effect immediately.
type ActorStore interface {
	Get(ctx context.Context, actorID id.ActorID) (*models.Actor, error)
}

// RequireActor rejects requests without a valid bearer token and a live,
// active actor record behind it.
func RequireActor(validator TokenValidator, store ActorStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := resolveActor(r, validator, store, logger)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			if actor == nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthenticated, "missing or invalid Authorization header"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// OptionalActor resolves an actor when a bearer token is presented, but lets
// anonymous requests through. A presented-but-invalid token is still an
// error: silently downgrading to anonymous would mask client bugs.
func OptionalActor(validator TokenValidator, store ActorStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := resolveActor(r, validator, store, logger)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			ctx := r.Context()
			if actor != nil {
				ctx = WithActor(ctx, actor)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveActor returns (nil, nil) when no Authorization header is present.
func resolveActor(r *http.Request, validator TokenValidator, store ActorStore, logger *slog.Logger) (*models.Actor, error) {
	const bearerPrefix = "Bearer "
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
	if !ok {
		return nil, nil
	}

	ctx := r.Context()
	claims, err := validator.ValidateToken(raw)
	if err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "invalid bearer token",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return nil, err
	}

	actorID, err := id.ParseActorID(claims.ActorID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "invalid actor id in token")
	}

	actor, err := store.Get(ctx, actorID)
	if err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "token references unknown actor",
				"request_id", requestcontext.RequestID(ctx),
				"actor_id", actorID,
			)
		}
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "unknown actor")
	}
	if !actor.Active {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "actor is deactivated")
	}
	return actor, nil
}
