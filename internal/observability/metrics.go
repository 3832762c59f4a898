package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumin_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resumin_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PageViewsTracked counts analytics events accepted for storage, by type.
	PageViewsTracked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumin_analytics_events_total",
		Help: "Total number of analytics events recorded by event type",
	}, []string{"event_type"})

	// PageViewsDeduplicated counts page views rejected by the dedup guard.
	PageViewsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resumin_analytics_page_views_deduplicated_total",
		Help: "Total number of page views suppressed by the 60s dedup guard",
	})

	// ResumeRenders counts public resume renders by layout structure.
	ResumeRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumin_resume_renders_total",
		Help: "Total number of public resume renders by layout structure",
	}, []string{"structure"})

	// QRCodesGenerated counts generated QR code images.
	QRCodesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resumin_qr_codes_generated_total",
		Help: "Total number of QR codes generated",
	})

	// PictureUploads counts profile picture uploads by outcome.
	PictureUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumin_picture_uploads_total",
		Help: "Total number of profile picture uploads by outcome",
	}, []string{"outcome"})

	// GeoIPLookups counts IP geolocation lookups by outcome.
	GeoIPLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resumin_geoip_lookups_total",
		Help: "Total number of IP geolocation lookups by outcome",
	}, []string{"outcome"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
