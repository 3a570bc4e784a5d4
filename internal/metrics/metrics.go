// Package metrics provides Prometheus instrumentation for query submissions
// and an optional debug HTTP endpoint exposing them.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlemay/eventfind/internal/logging"
)

// Metrics holds the Prometheus instruments for the client. All instruments
// live on a private registry so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	queriesTotal  *prometheus.CounterVec
	inFlight      prometheus.Gauge
	queryDuration prometheus.Histogram
}

// NewMetrics creates a Metrics instance with its own registry, including the
// standard Go runtime collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventfind",
			Name:      "queries_total",
			Help:      "Total query submissions by final outcome.",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eventfind",
			Name:      "queries_in_flight",
			Help:      "Number of query submissions currently awaiting a response.",
		}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "eventfind",
			Name:      "query_duration_seconds",
			Help:      "Wall-clock duration of query submissions.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		m.queriesTotal,
		m.inFlight,
		m.queryDuration,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m
}

// ObserveQuery records one finished submission with its final outcome
// ("success", "no_results", "error", "invalid") and duration.
func (m *Metrics) ObserveQuery(outcome string, d time.Duration) {
	m.queriesTotal.WithLabelValues(outcome).Inc()
	m.queryDuration.Observe(d.Seconds())
}

// IncInFlight increments the in-flight gauge.
func (m *Metrics) IncInFlight() { m.inFlight.Inc() }

// DecInFlight decrements the in-flight gauge.
func (m *Metrics) DecInFlight() { m.inFlight.Dec() }

// WritePrometheus serves the metrics in Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Serve starts a debug HTTP listener exposing /metrics on addr and blocks
// until ctx is canceled. Intended to run in its own goroutine; listener
// errors are logged, not returned, because the debug endpoint must never
// take the client down.
func (m *Metrics) Serve(ctx context.Context, addr string, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		m.WritePrometheus(w, r)
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listener started", logging.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics listener failed", err)
	}
}
