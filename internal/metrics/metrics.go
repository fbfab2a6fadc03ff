// Package metrics exposes Prometheus metrics for the retrieval engine and
// its HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector on a private registry. A nil *Metrics is
// valid and records nothing, so wiring stays optional in tests.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	retrievalTotal    *prometheus.CounterVec
	retrievalDuration *prometheus.HistogramVec
	retrievedPassages *prometheus.HistogramVec
	variantFailures   prometheus.Counter
	thresholdRelaxed  prometheus.Counter
	fallbackTriggered prometheus.Counter
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalrag",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legalrag",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "legalrag",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		},
	)
	retrievalTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalrag",
			Subsystem: "retrieval",
			Name:      "requests_total",
			Help:      "Total retrieval requests by contributing method.",
		},
		[]string{"method"},
	)
	retrievalDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legalrag",
			Subsystem: "retrieval",
			Name:      "duration_seconds",
			Help:      "Retrieval duration per question in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	retrievedPassages := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legalrag",
			Subsystem: "retrieval",
			Name:      "passages",
			Help:      "Distribution of passages returned per question.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"method"},
	)
	variantFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "legalrag",
			Subsystem: "retrieval",
			Name:      "variant_failures_total",
			Help:      "Total query variants dropped due to upstream failures.",
		},
	)
	thresholdRelaxed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "legalrag",
			Subsystem: "retrieval",
			Name:      "threshold_relaxations_total",
			Help:      "Total retries with a relaxed threshold to meet the minimum result count.",
		},
	)
	fallbackTriggered := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "legalrag",
			Subsystem: "retrieval",
			Name:      "keyword_fallbacks_total",
			Help:      "Total keyword anchoring fallbacks after empty semantic retrieval.",
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		retrievalTotal,
		retrievalDuration,
		retrievedPassages,
		variantFailures,
		thresholdRelaxed,
		fallbackTriggered,
	)

	return &Metrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		retrievalTotal:    retrievalTotal,
		retrievalDuration: retrievalDuration,
		retrievedPassages: retrievedPassages,
		variantFailures:   variantFailures,
		thresholdRelaxed:  thresholdRelaxed,
		fallbackTriggered: fallbackTriggered,
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware instruments an HTTP handler with request counters and latency.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			r.Method, r.URL.Path, strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).
			Observe(time.Since(start).Seconds())
	})
}

// ObserveRetrieval records one answered question.
func (m *Metrics) ObserveRetrieval(method string, passages int, duration time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "none"
	}
	m.retrievalTotal.WithLabelValues(method).Inc()
	m.retrievedPassages.WithLabelValues(method).Observe(float64(passages))
	m.retrievalDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// VariantFailed records a query variant dropped due to an upstream failure.
func (m *Metrics) VariantFailed() {
	if m == nil {
		return
	}
	m.variantFailures.Inc()
}

// ThresholdRelaxed records a relaxed-threshold retry.
func (m *Metrics) ThresholdRelaxed() {
	if m == nil {
		return
	}
	m.thresholdRelaxed.Inc()
}

// FallbackTriggered records a keyword anchoring fallback.
func (m *Metrics) FallbackTriggered() {
	if m == nil {
		return
	}
	m.fallbackTriggered.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
