package dashboard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the dashboard's prometheus instruments. They live on an
// injected registry so tests and multiple servers never collide.
type metrics struct {
	artifactLoads *prometheus.CounterVec
	loadDuration  *prometheus.HistogramVec
	pageRenders   *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		artifactLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sophiakit_artifact_loads_total",
			Help: "Artifact load attempts by artifact and result.",
		}, []string{"artifact", "result"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sophiakit_artifact_load_duration_seconds",
			Help:    "Time spent reading and decoding an artifact.",
			Buckets: prometheus.DefBuckets,
		}, []string{"artifact"}),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sophiakit_page_renders_total",
			Help: "Dashboard page renders by page.",
		}, []string{"page"}),
	}
	reg.MustRegister(m.artifactLoads, m.loadDuration, m.pageRenders)
	return m
}

// observeLoad records one artifact load. Degraded means the loader emitted
// at least one diagnostic, not that the call failed: loads never fail.
func (m *metrics) observeLoad(artifact string, start time.Time, degraded bool) {
	result := "ok"
	if degraded {
		result = "degraded"
	}
	m.artifactLoads.WithLabelValues(artifact, result).Inc()
	m.loadDuration.WithLabelValues(artifact).Observe(time.Since(start).Seconds())
}
