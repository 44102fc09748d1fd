package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ytdlp manager
type Metrics struct {
	// Enrichment metrics
	EnrichmentsTotal   prometheus.Counter
	EnrichmentErrors   *prometheus.CounterVec
	EnrichmentDuration prometheus.Histogram

	// Discovery metrics
	VideosDiscovered  prometheus.Counter
	DiscoveryDuration prometheus.Histogram

	// Sync metrics
	SyncSweepsTotal prometheus.Counter
	SyncFailures    *prometheus.CounterVec
	SyncDuration    prometheus.Histogram

	// Registry metrics
	ActiveSubscriptions prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all counters and gauges
func NewMetrics() *Metrics {
	return &Metrics{
		EnrichmentsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ytdlp_manager_enrichments_total",
			Help: "Total number of completed subscription enrichments",
		}),
		EnrichmentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytdlp_manager_enrichment_errors_total",
				Help: "Total number of failed subscription enrichments",
			},
			[]string{"error_type"},
		),
		EnrichmentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ytdlp_manager_enrichment_duration_seconds",
			Help:    "Duration of subscription enrichment in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),

		VideosDiscovered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ytdlp_manager_videos_discovered_total",
			Help: "Total number of videos registered by discovery runs",
		}),
		DiscoveryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ytdlp_manager_discovery_duration_seconds",
			Help:    "Duration of channel discovery runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),

		SyncSweepsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ytdlp_manager_sync_sweeps_total",
			Help: "Total number of sync sweeps started",
		}),
		SyncFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytdlp_manager_sync_failures_total",
				Help: "Total number of per-subscription sync failures",
			},
			[]string{"error_type"},
		),
		SyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ytdlp_manager_sync_duration_seconds",
			Help:    "Duration of full sync sweeps in seconds",
			Buckets: []float64{1, 10, 60, 300, 900, 1800, 3600},
		}),

		ActiveSubscriptions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ytdlp_manager_subscriptions",
			Help: "Current number of registered subscriptions",
		}),
	}
}

// RecordEnrichment records a completed enrichment
func (m *Metrics) RecordEnrichment(duration float64) {
	m.EnrichmentsTotal.Inc()
	m.EnrichmentDuration.Observe(duration)
}

// RecordEnrichmentError records a failed enrichment with error type
func (m *Metrics) RecordEnrichmentError(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.EnrichmentErrors.WithLabelValues(errorType).Inc()
}

// RecordDiscovery records a discovery run
func (m *Metrics) RecordDiscovery(registered int, duration float64) {
	if registered > 0 {
		m.VideosDiscovered.Add(float64(registered))
	}
	m.DiscoveryDuration.Observe(duration)
}

// RecordSyncSweep records a full sweep
func (m *Metrics) RecordSyncSweep(duration float64) {
	m.SyncSweepsTotal.Inc()
	m.SyncDuration.Observe(duration)
}

// RecordSyncFailure records a per-subscription sync failure
func (m *Metrics) RecordSyncFailure(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.SyncFailures.WithLabelValues(errorType).Inc()
}

// UpdateSubscriptions updates the subscription gauge
func (m *Metrics) UpdateSubscriptions(count int) {
	m.ActiveSubscriptions.Set(float64(count))
}
