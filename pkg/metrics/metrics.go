// Package metrics provides Prometheus metrics for the cadence service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cadence"

var (
	// HTTP performance metrics.
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method"})

	// Submission metrics.
	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Week submissions by kind and outcome.",
	}, []string{"kind", "outcome"})

	submissionRowsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submission_rows_dropped_total",
		Help:      "Submission rows dropped for failing the positivity invariant.",
	})

	// Scoring metrics.
	scoreComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "score_compute_duration_ms",
		Help:      "Compliance score computation latency in milliseconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	// Directory lookup cache metrics.
	directoryCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_cache_hits_total",
		Help:      "Directory lookups served from the TTL cache.",
	})

	directoryCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_cache_misses_total",
		Help:      "Directory lookups that fell through to the upstream API.",
	})

	// Notification delivery metrics.
	notifyQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Messages waiting in the notification queue.",
	})

	notifySent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_sent_total",
		Help:      "Notifications delivered to the sink.",
	})

	notifyFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_failed_total",
		Help:      "Notification deliveries that returned an error.",
	})

	notifyDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_dropped_total",
		Help:      "Notifications dropped due to queue backpressure.",
	})

	// Nudge metrics.
	nudgesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nudges_created_total",
		Help:      "Manager nudges created.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

// RecordSubmission records a week submission attempt.
func RecordSubmission(kind, outcome string) {
	submissions.WithLabelValues(kind, outcome).Inc()
}

// RecordSubmissionRowsDropped records rows filtered out before persistence.
func RecordSubmissionRowsDropped(n int) {
	submissionRowsDropped.Add(float64(n))
}

// RecordScoreComputeDuration records scoring latency in milliseconds.
func RecordScoreComputeDuration(ms float64) {
	scoreComputeDuration.Observe(ms)
}

// RecordDirectoryCacheHit records a cache-served directory lookup.
func RecordDirectoryCacheHit() { directoryCacheHits.Inc() }

// RecordDirectoryCacheMiss records a lookup that went upstream.
func RecordDirectoryCacheMiss() { directoryCacheMisses.Inc() }

// UpdateNotifyQueueDepth sets the current notification queue depth.
func UpdateNotifyQueueDepth(n int) { notifyQueueDepth.Set(float64(n)) }

// RecordNotifySent records a delivered notification.
func RecordNotifySent() { notifySent.Inc() }

// RecordNotifyFailed records a failed notification delivery.
func RecordNotifyFailed() { notifyFailed.Inc() }

// RecordNotifyDropped records a notification dropped on backpressure.
func RecordNotifyDropped() { notifyDropped.Inc() }

// RecordNudgeCreated records a created nudge.
func RecordNudgeCreated() { nudgesCreated.Inc() }
