package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simbahan/internal/church/models"
	id "simbahan/pkg/domain"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *recordingSink) TransitionApplied(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink down")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestWorkerDeliversToAllSinks(t *testing.T) {
	dispatcher := NewDispatcher(8, nil)
	first := &recordingSink{}
	second := &recordingSink{}
	worker := NewWorker(dispatcher.Inbox(), nil, first, second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	event := Event{
		ChurchID:   "baclayon",
		FromStatus: models.StatusPending,
		ToStatus:   models.StatusHeritageReview,
		ActorID:    id.NewActorID(),
		Timestamp:  time.Now(),
	}
	dispatcher.TransitionApplied(ctx, event)

	require.Eventually(t, func() bool {
		return first.count() == 1 && second.count() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestWorkerSkipsFailingSink(t *testing.T) {
	dispatcher := NewDispatcher(8, nil)
	broken := &recordingSink{fail: true}
	healthy := &recordingSink{}
	worker := NewWorker(dispatcher.Inbox(), nil, broken, healthy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	dispatcher.TransitionApplied(ctx, Event{ChurchID: "loboc", ToStatus: models.StatusApproved})

	require.Eventually(t, func() bool {
		return healthy.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	dispatcher := NewDispatcher(1, nil)
	ctx := context.Background()

	// No worker draining: the second event must be dropped, not block.
	dispatcher.TransitionApplied(ctx, Event{ChurchID: "a"})
	finished := make(chan struct{})
	go func() {
		dispatcher.TransitionApplied(ctx, Event{ChurchID: "b"})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full buffer")
	}
	assert.Len(t, dispatcher.Inbox(), 1)
}
