package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Upload Metrics
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_media_uploads_total",
			Help: "Total number of media uploads",
		},
		[]string{"kind"},
	)

	MediaUploadSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_media_upload_size_bytes",
			Help:    "Size of uploaded media in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 4, 10), // 64KB to ~16GB
		},
		[]string{"kind"},
	)

	// Auth Metrics
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_token_refreshes_total",
			Help: "Total number of refresh token rotations",
		},
		[]string{"status"},
	)

	// Engagement Metrics
	TogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_toggles_total",
			Help: "Total number of like and subscription toggles",
		},
		[]string{"target", "state"},
	)

	VideoViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vidtube_video_views_total",
			Help: "Total number of recorded video views",
		},
	)

	// Cache Metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordMediaUpload records an upload of the given kind (avatar, cover,
// video, thumbnail).
func RecordMediaUpload(kind string, sizeBytes int64) {
	MediaUploadsTotal.WithLabelValues(kind).Inc()
	MediaUploadSizeBytes.WithLabelValues(kind).Observe(float64(sizeBytes))
}

// RecordLogin records a login attempt
func RecordLogin(success bool) {
	LoginsTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordTokenRefresh records a refresh token rotation
func RecordTokenRefresh(success bool) {
	TokenRefreshesTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordToggle records a like or subscription toggle
func RecordToggle(target string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	TogglesTotal.WithLabelValues(target, state).Inc()
}

// RecordVideoView records a counted video view
func RecordVideoView() {
	VideoViewsTotal.Inc()
}

// RecordCacheAccess records cache hit or miss
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHitsTotal.WithLabelValues(cacheType).Inc()
	} else {
		CacheMissesTotal.WithLabelValues(cacheType).Inc()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
