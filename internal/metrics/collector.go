package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the studio service. Methods
// are nil-safe so packages can run without a collector in tests.
type Metrics struct {
	compiles        *prometheus.CounterVec
	compileWarnings prometheus.Counter
	publishedViews  *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	uploadBytes     prometheus.Histogram
}

// NewMetrics creates and registers all studio metrics. Call once at
// startup; promauto registers on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		compiles: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markup_compiles_total",
				Help: "Total number of markup compilations",
			},
			[]string{"reason"},
		),
		compileWarnings: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "markup_compile_warnings_total",
				Help: "Total number of objects skipped during compilation",
			},
		),
		publishedViews: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "published_views_total",
				Help: "Total number of published experience views",
			},
			[]string{"slug"},
		),
		cacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "markup_cache_hits_total",
				Help: "Total number of markup cache hits",
			},
		),
		cacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "markup_cache_misses_total",
				Help: "Total number of markup cache misses",
			},
		),
		uploadBytes: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "asset_upload_bytes",
				Help:    "Size distribution of uploaded assets",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
			},
		),
	}
}

func (m *Metrics) RecordCompile(reason string, warnings int) {
	if m == nil {
		return
	}
	m.compiles.WithLabelValues(reason).Inc()
	m.compileWarnings.Add(float64(warnings))
}

func (m *Metrics) RecordPublishedView(slug string) {
	if m == nil {
		return
	}
	m.publishedViews.WithLabelValues(slug).Inc()
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) RecordUpload(sizeBytes int64) {
	if m == nil {
		return
	}
	m.uploadBytes.Observe(float64(sizeBytes))
}
