package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutation activity and the silent-recovery paths
// (mirror failures, discarded snapshots) that never surface to callers.
type CartMetrics struct {
	mutations        *prometheus.CounterVec
	syncFailures     prometheus.Counter
	syncDropped      prometheus.Counter
	snapshotDiscards prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied locally, by operation.",
	}, []string{"op"})
	syncFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_sync_failures_total",
		Help: "Mirror calls to the order service that failed and were swallowed.",
	})
	syncDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_sync_dropped_total",
		Help: "Mirror events dropped because the dispatch queue was full.",
	})
	snapshotDiscards := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_snapshot_discards_total",
		Help: "Persisted snapshots discarded as corrupt or version-mismatched.",
	})
	reg.MustRegister(mutations, syncFailures, syncDropped, snapshotDiscards)
	return &CartMetrics{
		mutations:        mutations,
		syncFailures:     syncFailures,
		syncDropped:      syncDropped,
		snapshotDiscards: snapshotDiscards,
	}
}

// IncMutation counts one applied mutation for the named operation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	if op == "" {
		op = "unknown"
	}
	c.mutations.WithLabelValues(op).Inc()
}

// IncSyncFailure counts a swallowed mirror failure.
func (c *CartMetrics) IncSyncFailure() {
	if c == nil || c.syncFailures == nil {
		return
	}
	c.syncFailures.Inc()
}

// IncSyncDropped counts a mirror event dropped at enqueue time.
func (c *CartMetrics) IncSyncDropped() {
	if c == nil || c.syncDropped == nil {
		return
	}
	c.syncDropped.Inc()
}

// IncSnapshotDiscard counts a snapshot discarded in favor of an empty cart.
func (c *CartMetrics) IncSnapshotDiscard() {
	if c == nil || c.snapshotDiscards == nil {
		return
	}
	c.snapshotDiscards.Inc()
}
