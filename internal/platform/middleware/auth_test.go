package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simbahan/internal/actor/models"
	"simbahan/internal/actor/store/memory"
	"simbahan/internal/token"
	id "simbahan/pkg/domain"
	"simbahan/pkg/requestcontext"
)

func setupAuth(t *testing.T) (*token.Service, *memory.InMemoryStore, *models.Actor) {
	t.Helper()
	tokens := token.NewService("test-key", "simbahan")
	store := memory.NewInMemoryStore()

	actor, err := models.NewActor(id.NewActorID(), id.RoleChanceryOffice, "tagbilaran", "", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), actor))

	return tokens, store, actor
}

func bearerFor(t *testing.T, tokens *token.Service, actor *models.Actor) string {
	t.Helper()
	signed, err := tokens.GenerateAccessToken(actor.ID, actor.Role, actor.Diocese, actor.Parish, time.Hour)
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestRequireActor(t *testing.T) {
	tokens, store, actor := setupAuth(t)

	var seen *models.Actor
	handler := RequireActor(tokens, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token resolves actor", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", bearerFor(t, tokens, actor))

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, actor.ID, seen.ID)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer nonsense")

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated actor rejected", func(t *testing.T) {
		deactivated, err := models.NewActor(id.NewActorID(), id.RoleMuseumResearcher, "talibon", "", time.Now())
		require.NoError(t, err)
		require.NoError(t, store.Create(context.Background(), deactivated))
		bearer := bearerFor(t, tokens, deactivated)

		deactivated.ApplyDeactivation(time.Now())
		require.NoError(t, store.Update(context.Background(), deactivated))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", bearer)

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalActor(t *testing.T) {
	tokens, store, actor := setupAuth(t)

	var seen *models.Actor
	handler := OptionalActor(tokens, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous passes through", func(t *testing.T) {
		seen = actor // sentinel; must be reset to nil by the handler
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, seen)
	})

	t.Run("valid token resolves actor", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", bearerFor(t, tokens, actor))

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, actor.ID, seen.ID)
	})

	t.Run("invalid token still rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer nonsense")

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestMetadata(t *testing.T) {
	var platform, requestID string
	handler := RequestMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		platform = requestcontext.ClientPlatform(ctx)
		requestID = requestcontext.RequestID(ctx)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	handler.ServeHTTP(w, r)
	assert.NotEmpty(t, requestID)
	assert.Contains(t, platform, "Chrome")
}
