package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the planner.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	generationTotal *prometheus.CounterVec
	staleDiscards   prometheus.Counter
	exportTotal     *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_generation_requests_total",
		Help: "Total plan generation batches by outcome",
	}, []string{"outcome"})

	staleDiscards := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_generation_stale_discards_total",
		Help: "Gateway results dropped because the day was locked mid-flight",
	})

	exportTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_exports_total",
		Help: "Total plan export jobs by outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheHits, cacheMisses, generationTotal, staleDiscards, exportTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		generationTotal: generationTotal,
		staleDiscards:   staleDiscards,
		exportTotal:     exportTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (s *MetricsService) Handler() http.Handler {
	if s == nil {
		return promhttp.Handler()
	}
	return s.handler
}

// ObserveHTTPRequest records a completed request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// CacheHit counts a cache lookup that was served from Redis.
func (s *MetricsService) CacheHit() {
	if s != nil {
		s.cacheHits.Inc()
	}
}

// CacheMiss counts a cache lookup that fell through to Postgres.
func (s *MetricsService) CacheMiss() {
	if s != nil {
		s.cacheMisses.Inc()
	}
}

// GenerationCompleted records a generation batch outcome
// ("applied", "rejected", "gateway_error").
func (s *MetricsService) GenerationCompleted(outcome string) {
	if s != nil {
		s.generationTotal.WithLabelValues(outcome).Inc()
	}
}

// StaleResponseDiscarded counts a per-day result dropped due to a mid-flight lock.
func (s *MetricsService) StaleResponseDiscarded() {
	if s != nil {
		s.staleDiscards.Inc()
	}
}

// ExportCompleted records an export job outcome ("finished", "failed").
func (s *MetricsService) ExportCompleted(outcome string) {
	if s != nil {
		s.exportTotal.WithLabelValues(outcome).Inc()
	}
}
