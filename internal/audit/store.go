package audit

import (
	"context"

	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
)

// Store persists transition records. It is append-only: implementations
// expose no update or delete operations.
//
// Applied records normally arrive through the church store's compare-and-swap
// (same lock section or transaction as the status write); the workflow engine
// calls Append directly only for rejected attempts.
type Store interface {
	Append(ctx context.Context, rec TransitionRecord) error
	ListByChurch(ctx context.Context, churchID id.ParishID) ([]TransitionRecord, error)

	// LatestApplied returns the most recent applied record moving the church
	// into the given status, or sentinel.ErrNotFound. The workflow engine
	// uses it to answer idempotent retries without a duplicate entry.
	LatestApplied(ctx context.Context, churchID id.ParishID, to models.Status) (*TransitionRecord, error)
}
