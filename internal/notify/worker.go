package notify

import (
	"context"
	"log/slog"
)

// Worker consumes events from the dispatcher inbox and delivers them to each
// sink. Sink failures are logged and skipped; the ledger already holds the
// authoritative record, so delivery is best effort here.
type Worker struct {
	inbox  <-chan Event
	sinks  []Sink
	logger *slog.Logger
}

func NewWorker(inbox <-chan Event, logger *slog.Logger, sinks ...Sink) *Worker {
	return &Worker{inbox: inbox, sinks: sinks, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			for _, sink := range w.sinks {
				if err := sink.TransitionApplied(ctx, event); err != nil && w.logger != nil {
					w.logger.ErrorContext(ctx, "notification sink failed",
						"church_id", event.ChurchID,
						"to_status", event.ToStatus,
						"error", err,
					)
				}
			}
		}
	}
}
