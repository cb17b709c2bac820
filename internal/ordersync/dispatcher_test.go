package ordersync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harvestlink-app/harvestlink-backend/internal/cart"
	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

type stubSender struct {
	mu        sync.Mutex
	events    []cart.MirrorEvent
	err       error
	release   chan struct{}
	started   chan struct{}
	startOnce sync.Once
}

func (s *stubSender) SubmitMutation(_ context.Context, event cart.MirrorEvent) error {
	if s.started != nil {
		s.startOnce.Do(func() { close(s.started) })
	}
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *stubSender) delivered() []cart.MirrorEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]cart.MirrorEvent(nil), s.events...)
}

func TestDispatcherDeliversQueuedEvents(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	d := NewDispatcher(sender, 4, time.Second, nil, nil)

	d.Enqueue(cart.MirrorEvent{Type: enums.CartEventItemAdded, Credential: "token"})
	d.Enqueue(cart.MirrorEvent{Type: enums.CartEventCleared, Credential: "token"})
	d.Close()

	got := sender.delivered()
	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	if got[0].Type != enums.CartEventItemAdded || got[1].Type != enums.CartEventCleared {
		t.Fatalf("events delivered out of order: %+v", got)
	}
}

func TestDispatcherSkipsEventsWithoutCredential(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	d := NewDispatcher(sender, 4, time.Second, nil, nil)

	d.Enqueue(cart.MirrorEvent{Type: enums.CartEventItemAdded})
	d.Close()

	if got := sender.delivered(); len(got) != 0 {
		t.Fatalf("credential-less events must be skipped, got %+v", got)
	}
}

func TestDispatcherSwallowsSenderFailures(t *testing.T) {
	t.Parallel()

	sender := &stubSender{err: errors.New("unreachable")}
	d := NewDispatcher(sender, 4, time.Second, nil, nil)

	// Enqueue never surfaces the delivery outcome.
	d.Enqueue(cart.MirrorEvent{Type: enums.CartEventItemAdded, Credential: "token"})
	d.Close()

	if got := sender.delivered(); len(got) != 1 {
		t.Fatalf("expected attempted delivery, got %d", len(got))
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	t.Parallel()

	sender := &stubSender{release: make(chan struct{}), started: make(chan struct{})}
	d := NewDispatcher(sender, 1, time.Second, nil, nil)

	// First event blocks inside the sender, the second fills the queue, the
	// third has nowhere to go and is dropped.
	d.Enqueue(cart.MirrorEvent{Type: enums.CartEventItemAdded, Credential: "token"})
	<-sender.started
	d.Enqueue(cart.MirrorEvent{Type: enums.CartEventQuantityChanged, Credential: "token"})
	d.Enqueue(cart.MirrorEvent{Type: enums.CartEventCleared, Credential: "token"})

	close(sender.release)
	d.Close()

	got := sender.delivered()
	if len(got) != 2 {
		t.Fatalf("expected overflow to be dropped, got %d deliveries", len(got))
	}
}
