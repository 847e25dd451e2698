//go:build integration

package church_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simbahan/internal/audit"
	auditpostgres "simbahan/internal/audit/store/postgres"
	"simbahan/internal/church/models"
	churchstore "simbahan/internal/church/store/church"
	id "simbahan/pkg/domain"
	"simbahan/pkg/platform/sentinel"
	"simbahan/pkg/testutil/containers"
)

const schema = `
CREATE TABLE churches (
    id                  TEXT PRIMARY KEY,
    diocese             TEXT NOT NULL,
    status              TEXT NOT NULL,
    heritage_tag        TEXT NOT NULL DEFAULT '',
    founding_year       INTEGER NOT NULL DEFAULT 0,
    architectural_style TEXT NOT NULL DEFAULT '',
    description         TEXT NOT NULL DEFAULT '',
    keywords            JSONB NOT NULL DEFAULT '[]',
    version             BIGINT NOT NULL,
    created_at          TIMESTAMPTZ NOT NULL,
    updated_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX churches_diocese_idx ON churches (diocese, status);

CREATE TABLE transition_records (
    id              UUID PRIMARY KEY,
    church_id       TEXT NOT NULL,
    from_status     TEXT NOT NULL,
    to_status       TEXT NOT NULL,
    actor_id        UUID NOT NULL,
    actor_role      TEXT NOT NULL,
    score           INTEGER NOT NULL,
    confidence      TEXT NOT NULL,
    is_heritage     BOOLEAN NOT NULL,
    notes           TEXT NOT NULL DEFAULT '',
    client_platform TEXT NOT NULL DEFAULT '',
    outcome         TEXT NOT NULL,
    error_code      TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX transition_records_church_idx
    ON transition_records (church_id, created_at DESC);
`

func setupPostgres(t *testing.T) (*churchstore.PostgresStore, *auditpostgres.Store, *containers.PostgresContainer) {
	t.Helper()
	pc := containers.NewPostgresContainer(t, schema)
	audits := auditpostgres.New(pc.DB)
	return churchstore.NewPostgres(pc.DB, audits), audits, pc
}

func newChurch(t *testing.T, parish id.ParishID) *models.Church {
	t.Helper()
	c, err := models.NewChurch(parish, "tagbilaran", models.Profile{
		HeritageTag:        models.TagICP,
		FoundingYear:       1727,
		ArchitecturalStyle: "earthquake baroque",
		Keywords:           []string{"coral stone"},
	}, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return c
}

func appliedRecord(parish id.ParishID, from, to models.Status) audit.TransitionRecord {
	return audit.TransitionRecord{
		ID:         uuid.New(),
		ChurchID:   parish,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    id.NewActorID(),
		ActorRole:  id.RoleChanceryOffice,
		Score:      models.Classification{Score: 180, Confidence: models.ConfidenceHigh, IsHeritage: true},
		Outcome:    audit.OutcomeApplied,
		Timestamp:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgresCreateAndGet(t *testing.T) {
	store, _, _ := setupPostgres(t)
	ctx := context.Background()

	c := newChurch(t, "baclayon")
	require.NoError(t, store.Create(ctx, c))

	got, err := store.Get(ctx, "baclayon")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Profile.Keywords, got.Profile.Keywords)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, int64(1), got.Version)

	t.Run("duplicate parish", func(t *testing.T) {
		err := store.Create(ctx, newChurch(t, "baclayon"))
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	t.Run("unknown parish", func(t *testing.T) {
		_, err := store.Get(ctx, "atlantis")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestPostgresCompareAndSwap(t *testing.T) {
	store, audits, _ := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newChurch(t, "loboc")))

	t.Run("applies status, bumps version, writes record atomically", func(t *testing.T) {
		rec := appliedRecord("loboc", models.StatusPending, models.StatusHeritageReview)
		updated, err := store.CompareAndSwap(ctx, "loboc", 1, models.StatusHeritageReview, rec)
		require.NoError(t, err)
		assert.Equal(t, models.StatusHeritageReview, updated.Status)
		assert.Equal(t, int64(2), updated.Version)

		trail, err := audits.ListByChurch(ctx, "loboc")
		require.NoError(t, err)
		require.Len(t, trail, 1)
		assert.Equal(t, rec.ID, trail[0].ID)
	})

	t.Run("stale version conflicts without side effects", func(t *testing.T) {
		rec := appliedRecord("loboc", models.StatusHeritageReview, models.StatusApproved)
		_, err := store.CompareAndSwap(ctx, "loboc", 1, models.StatusApproved, rec)
		assert.ErrorIs(t, err, sentinel.ErrConflict)

		trail, err := audits.ListByChurch(ctx, "loboc")
		require.NoError(t, err)
		assert.Len(t, trail, 1, "conflicted swap must not write a record")
	})

	t.Run("unknown parish", func(t *testing.T) {
		rec := appliedRecord("atlantis", models.StatusPending, models.StatusApproved)
		_, err := store.CompareAndSwap(ctx, "atlantis", 1, models.StatusApproved, rec)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

// TestPostgresConcurrentCompareAndSwap races writers carrying the same
// version token against the real database: exactly one wins.
func TestPostgresConcurrentCompareAndSwap(t *testing.T) {
	store, audits, _ := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newChurch(t, "dauis")))

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := appliedRecord("dauis", models.StatusPending, models.StatusHeritageReview)
			_, errs[i] = store.CompareAndSwap(ctx, "dauis", 1, models.StatusHeritageReview, rec)
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, err := range errs {
		if err == nil {
			applied++
		} else {
			assert.ErrorIs(t, err, sentinel.ErrConflict)
		}
	}
	assert.Equal(t, 1, applied)

	got, err := store.Get(ctx, "dauis")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)

	trail, err := audits.ListByChurch(ctx, "dauis")
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestPostgresUpdateProfileAndList(t *testing.T) {
	store, _, _ := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newChurch(t, "panglao")))
	require.NoError(t, store.Create(ctx, newChurch(t, "corella")))

	now := time.Now().UTC().Truncate(time.Microsecond)
	updated, err := store.UpdateProfile(ctx, "panglao", 1, models.Profile{
		FoundingYear:       1850,
		ArchitecturalStyle: "neoclassical",
		Keywords:           []string{"belfry", "watchtower"},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, 1850, updated.Profile.FoundingYear)

	_, err = store.UpdateProfile(ctx, "panglao", 1, models.Profile{}, now)
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	churches, err := store.List(ctx, churchstore.Filter{Diocese: "tagbilaran", Status: models.StatusPending})
	require.NoError(t, err)
	assert.Len(t, churches, 2)
}
