//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simbahan/internal/actor/models"
	actorpostgres "simbahan/internal/actor/store/postgres"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
	"simbahan/pkg/testutil/containers"
)

const schema = `
CREATE TABLE actors (
    id          UUID PRIMARY KEY,
    role        TEXT NOT NULL,
    diocese     TEXT NOT NULL,
    parish      TEXT NOT NULL DEFAULT '',
    secret_hash BYTEA NOT NULL,
    active      BOOLEAN NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX actors_active_secretary_idx
    ON actors (parish) WHERE role = 'parish_secretary' AND active;
`

func newSecretary(t *testing.T, parish id.ParishID) *models.Actor {
	t.Helper()
	a, err := models.NewActor(id.NewActorID(), id.RoleParishSecretary, "tagbilaran", parish,
		time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	a.SecretHash = []byte("$2a$10$placeholderhashfortests")
	return a
}

func TestPostgresActorStore(t *testing.T) {
	pc := containers.NewPostgresContainer(t, schema)
	store := actorpostgres.New(pc.DB)
	ctx := context.Background()

	first := newSecretary(t, "baclayon")
	require.NoError(t, store.Create(ctx, first))

	t.Run("round trip", func(t *testing.T) {
		got, err := store.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, id.RoleParishSecretary, got.Role)
		assert.Equal(t, first.SecretHash, got.SecretHash)
		assert.True(t, got.Active)
	})

	t.Run("unknown actor", func(t *testing.T) {
		_, err := store.Get(ctx, id.NewActorID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("second active secretary for the parish is rejected", func(t *testing.T) {
		err := store.Create(ctx, newSecretary(t, "baclayon"))
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	t.Run("deactivation frees the parish slot", func(t *testing.T) {
		first.Active = false
		first.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, store.Update(ctx, first))

		got, err := store.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)

		require.NoError(t, store.Create(ctx, newSecretary(t, "baclayon")))
	})

	t.Run("update of unknown actor", func(t *testing.T) {
		ghost := newSecretary(t, "corella")
		err := store.Update(ctx, ghost)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
