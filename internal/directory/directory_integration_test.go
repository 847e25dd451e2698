//go:build integration

package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditmemory "simbahan/internal/audit/store/memory"
	"simbahan/internal/church/models"
	churchstore "simbahan/internal/church/store/church"
	"simbahan/internal/directory"
	"simbahan/internal/notify"
	id "simbahan/pkg/domain"
	"simbahan/pkg/testutil/containers"
)

// countingLister wraps the in-memory store and counts trips to the source,
// so cache hits can be asserted without inspecting Redis directly.
type countingLister struct {
	store *churchstore.InMemory
	calls int
}

func (l *countingLister) List(ctx context.Context, filter churchstore.Filter) ([]models.Church, error) {
	l.calls++
	return l.store.List(ctx, filter)
}

func seedApproved(t *testing.T, store *churchstore.InMemory, parishes ...string) {
	t.Helper()
	ctx := context.Background()
	for _, parish := range parishes {
		c, err := models.NewChurch(id.ParishID(parish), "tagbilaran", models.Profile{}, time.Now().UTC())
		require.NoError(t, err)
		c.Status = models.StatusApproved
		require.NoError(t, store.Create(ctx, c))
	}
}

func TestDirectoryCachesInRedis(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	source := &countingLister{store: churchstore.NewInMemory(auditmemory.NewInMemoryStore())}
	seedApproved(t, source.store, "baclayon", "loboc")

	dir := directory.New(source, rc.Client, time.Minute)

	first, err := dir.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, source.calls)

	// Second read is served from the cache.
	second, err := dir.Approved(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls)

	t.Run("invalidation forces a source read", func(t *testing.T) {
		seedApproved(t, source.store, "dauis")
		require.NoError(t, dir.Invalidate(ctx))

		churches, err := dir.Approved(ctx)
		require.NoError(t, err)
		assert.Len(t, churches, 3)
		assert.Equal(t, 2, source.calls)
	})

	t.Run("applied transitions invalidate through the sink", func(t *testing.T) {
		seedApproved(t, source.store, "panglao")
		sink := directory.NewInvalidationSink(dir)
		require.NoError(t, sink.TransitionApplied(ctx, notify.Event{ChurchID: "panglao"}))

		churches, err := dir.Approved(ctx)
		require.NoError(t, err)
		assert.Len(t, churches, 4)
	})

	t.Run("expired entries fall back to the source", func(t *testing.T) {
		shortDir := directory.New(source, rc.Client, 50*time.Millisecond)
		require.NoError(t, dir.Invalidate(ctx))

		before := source.calls
		_, err := shortDir.Approved(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, source.calls)

		time.Sleep(100 * time.Millisecond)

		_, err = shortDir.Approved(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+2, source.calls)
	})
}
