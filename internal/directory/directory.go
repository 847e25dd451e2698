// Package directory serves the anonymous read path: the list of approved
// churches, cached in Redis with a TTL and invalidated whenever a
// transition lands. Cache failures degrade to the store; the directory
// never returns stale data on purpose, only within the TTL window.
package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"simbahan/internal/church/models"
	churchstore "simbahan/internal/church/store/church"
	"simbahan/internal/notify"
	dErrors "simbahan/pkg/domain-errors"
)

const cacheKey = "directory:approved"

// Lister is the underlying source of truth, the church store.
type Lister interface {
	List(ctx context.Context, filter churchstore.Filter) ([]models.Church, error)
}

type Option func(*Directory)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) { d.logger = logger }
}

// Directory is the read-through cache. A nil redis client disables caching
// and every read goes straight to the source.
type Directory struct {
	source Lister
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(source Lister, cache *redis.Client, ttl time.Duration, opts ...Option) *Directory {
	d := &Directory{
		source: source,
		cache:  cache,
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Approved returns every approved church, preferring the cache.
func (d *Directory) Approved(ctx context.Context) ([]models.Church, error) {
	if d.cache != nil {
		raw, err := d.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var churches []models.Church
			if err := json.Unmarshal(raw, &churches); err == nil {
				return churches, nil
			}
			// A corrupt entry falls through to the source and gets rewritten.
		} else if err != redis.Nil && d.logger != nil {
			d.logger.WarnContext(ctx, "directory cache read failed", "error", err)
		}
	}

	churches, err := d.source.List(ctx, churchstore.Filter{Status: models.StatusApproved})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list approved churches")
	}

	if d.cache != nil {
		if raw, err := json.Marshal(churches); err == nil {
			if err := d.cache.Set(ctx, cacheKey, raw, d.ttl).Err(); err != nil && d.logger != nil {
				d.logger.WarnContext(ctx, "directory cache write failed", "error", err)
			}
		}
	}
	return churches, nil
}

// Invalidate drops the cached directory.
func (d *Directory) Invalidate(ctx context.Context) error {
	if d.cache == nil {
		return nil
	}
	return d.cache.Del(ctx, cacheKey).Err()
}

// InvalidationSink adapts the directory to the notification worker: any
// applied transition may change what the public sees, so the cache entry is
// dropped.
type InvalidationSink struct {
	directory *Directory
}

func NewInvalidationSink(d *Directory) *InvalidationSink {
	return &InvalidationSink{directory: d}
}

func (s *InvalidationSink) TransitionApplied(ctx context.Context, _ notify.Event) error {
	return s.directory.Invalidate(ctx)
}
