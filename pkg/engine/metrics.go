package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alder-ui/alder/pkg/vdom"
)

// Metrics holds the Prometheus instruments for commit cycles.
type Metrics struct {
	commitCycles   prometheus.Counter
	patchesApplied *prometheus.CounterVec
	diffDuration   prometheus.Histogram
	framesCoalesce prometheus.Counter
}

// NewMetrics registers the engine metrics with reg. Pass
// prometheus.DefaultRegisterer for the usual global registry, or a
// private registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		commitCycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "alder",
			Name:      "commit_cycles_total",
			Help:      "Completed diff+patch cycles.",
		}),
		patchesApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alder",
			Name:      "patches_applied_total",
			Help:      "Patches applied to the live tree, by kind.",
		}, []string{"kind"}),
		diffDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "alder",
			Name:      "diff_duration_seconds",
			Help:      "Wall time of one diff+patch cycle.",
			Buckets:   prometheus.ExponentialBuckets(10e-6, 4, 8),
		}),
		framesCoalesce: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "alder",
			Name:      "frames_coalesced_total",
			Help:      "Update requests absorbed into an already scheduled frame.",
		}),
	}
}

func (m *Metrics) observeCommit(patches []vdom.Patch, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commitCycles.Inc()
	m.diffDuration.Observe(elapsed.Seconds())
	for i := range patches {
		m.patchesApplied.WithLabelValues(patches[i].Kind.String()).Inc()
	}
}

func (m *Metrics) observeCoalesced() {
	if m == nil {
		return
	}
	m.framesCoalesce.Inc()
}
