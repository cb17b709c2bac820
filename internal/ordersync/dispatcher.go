package ordersync

import (
	"context"
	"sync"
	"time"

	"github.com/harvestlink-app/harvestlink-backend/internal/cart"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
	"github.com/harvestlink-app/harvestlink-backend/pkg/metrics"
)

// Sender delivers one mirror event to the order service.
type Sender interface {
	SubmitMutation(ctx context.Context, event cart.MirrorEvent) error
}

// Dispatcher decouples local mutations from the network: events are queued
// and delivered by a single worker, and every failure is swallowed. The cart
// stays locally authoritative whether or not the mirror ever lands.
type Dispatcher struct {
	events    chan cart.MirrorEvent
	sender    Sender
	timeout   time.Duration
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher starts the delivery worker. queueSize bounds how many
// undelivered events are held before new ones are dropped.
func NewDispatcher(sender Sender, queueSize int, timeout time.Duration, logg *logger.Logger, cartMetrics *metrics.CartMetrics) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 128
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	d := &Dispatcher{
		events:  make(chan cart.MirrorEvent, queueSize),
		sender:  sender,
		timeout: timeout,
		logg:    logg,
		metrics: cartMetrics,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue hands off an event without ever blocking the caller. Events with no
// credential are skipped: the local mutation stands and nothing is surfaced.
func (d *Dispatcher) Enqueue(event cart.MirrorEvent) {
	if event.Credential == "" {
		if d.logg != nil {
			ctx := d.logg.WithSessionKey(context.Background(), event.SessionKey)
			d.logg.Debug(ctx, "skipping cart mirror, no credential")
		}
		return
	}
	select {
	case d.events <- event:
	default:
		d.metrics.IncSyncDropped()
		if d.logg != nil {
			ctx := d.logg.WithSessionKey(context.Background(), event.SessionKey)
			d.logg.Warn(ctx, "mirror queue full, dropping cart event")
		}
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.events {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event cart.MirrorEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.SubmitMutation(ctx, event); err != nil {
		d.metrics.IncSyncFailure()
		if d.logg != nil {
			logCtx := d.logg.WithFields(ctx, map[string]any{
				"session_key": event.SessionKey,
				"event":       string(event.Type),
				"product_id":  event.ProductID.String(),
			})
			d.logg.Warn(d.logg.WithField(logCtx, "reason", err.Error()), "cart mirror failed")
		}
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.events)
	})
	d.wg.Wait()
}
