// Package notify fans out TransitionApplied events to external consumers.
// The workflow engine only hands an event to the Dispatcher; delivery and
// retry are the consumers' concern, so a slow or failing sink can never hold
// up or roll back a transition.
package notify

import (
	"context"
	"log/slog"
	"time"

	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
)

// Event describes one accepted transition.
type Event struct {
	ChurchID   id.ParishID   `json:"church_id"`
	FromStatus models.Status `json:"from_status"`
	ToStatus   models.Status `json:"to_status"`
	ActorID    id.ActorID    `json:"actor_id"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Sink receives events drained by the worker.
type Sink interface {
	TransitionApplied(ctx context.Context, event Event) error
}

// Dispatcher buffers events between the synchronous engine and the worker.
// Enqueueing never blocks: when the buffer is full the event is dropped and
// logged, favoring workflow availability over delivery guarantees.
type Dispatcher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewDispatcher(buffer int, logger *slog.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// TransitionApplied implements the workflow engine's notifier port.
func (d *Dispatcher) TransitionApplied(ctx context.Context, event Event) {
	select {
	case d.inbox <- event:
	default:
		if d.logger != nil {
			d.logger.WarnContext(ctx, "notification buffer full, dropping event",
				"church_id", event.ChurchID,
				"to_status", event.ToStatus,
			)
		}
	}
}

// Inbox exposes the receive side for the worker.
func (d *Dispatcher) Inbox() <-chan Event {
	return d.inbox
}
