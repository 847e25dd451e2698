package audit

import (
	"time"

	"github.com/google/uuid"

	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
)

// Outcome says whether a transition attempt mutated church state.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeRejected Outcome = "rejected"
)

// TransitionRecord is one append-only ledger entry per transition attempt,
// accepted or rejected. Applied records are written atomically with the
// status change they describe; rejected records never accompany a mutation.
// Records are immutable once written — no update or delete operation exists.
type TransitionRecord struct {
	ID             uuid.UUID             `json:"id"`
	ChurchID       id.ParishID           `json:"church_id"`
	FromStatus     models.Status         `json:"from_status"`
	ToStatus       models.Status         `json:"to_status"`
	ActorID        id.ActorID            `json:"actor_id"`
	ActorRole      id.Role               `json:"actor_role"`
	Score          models.Classification `json:"score_at_transition"`
	Notes          string                `json:"notes,omitempty"`
	ClientPlatform string                `json:"client_platform,omitempty"`
	Outcome        Outcome               `json:"outcome"`
	ErrorCode      string                `json:"error_code,omitempty"`
	Timestamp      time.Time             `json:"timestamp"`
}
