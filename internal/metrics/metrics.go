// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// reqDuration is a histogram of HTTP request durations in seconds, labeled
// by path, method, and status code.
var reqDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests.",
		// buckets in seconds
		Buckets: []float64{0.01, 0.1, 0.3, 1.2, 5},
	},
	[]string{"path", "method", "status"},
)

// submissions counts accepted signups by variant (attendee|vip|sponsor).
var submissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signup_submissions_total",
		Help: "Accepted signup submissions by variant.",
	},
	[]string{"variant"},
)

// dispatches counts notification dispatch attempts by outcome (sent|skipped|failed).
var dispatches = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signup_dispatch_total",
		Help: "Signup notification dispatch attempts by outcome.",
	},
	[]string{"outcome"},
)

// RegisterDefault registers the default Go runtime and process collectors,
// the HTTP request duration histogram, and the signup domain counters.
// It is safe (and intended) to call this once at startup.
func RegisterDefault(logger *zap.Logger) {
	mustRegister(logger, "Go collector", collectors.NewGoCollector())
	mustRegister(logger, "process collector", collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mustRegister(logger, "HTTP request histogram", reqDuration)
	mustRegister(logger, "submission counter", submissions)
	mustRegister(logger, "dispatch counter", dispatches)
}

// mustRegister attempts to register a Prometheus collector. Already-registered
// collectors are fine (tests, repeated startup); anything else is a
// configuration error that should stop the process.
func mustRegister(logger *zap.Logger, name string, c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return
		}
		if logger != nil {
			logger.Fatal("failed to register "+name, zap.Error(err))
		} else {
			panic("metrics: failed to register " + name + ": " + err.Error())
		}
	}
}

// ObserveSubmission records an accepted submission for the given variant.
func ObserveSubmission(variant string) {
	submissions.WithLabelValues(variant).Inc()
}

// ObserveDispatch records a notification dispatch attempt outcome.
func ObserveDispatch(outcome string) {
	dispatches.WithLabelValues(outcome).Inc()
}

// HTTPMetrics is a middleware that records request duration into the
// http_request_duration_seconds histogram. It uses the chi route pattern
// (e.g., "/api/signup") instead of the raw path to keep label cardinality
// bounded.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		protoMajor := r.ProtoMajor
		if protoMajor < 1 {
			protoMajor = 1
		}
		ww := middleware.NewWrapResponseWriter(w, protoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		statusCode := ww.Status()
		// Status 0 means WriteHeader was never called; per net/http semantics
		// the handler completed with an implicit 200.
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		if statusCode < 100 || statusCode > 599 {
			statusCode = http.StatusInternalServerError
		}

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		reqDuration.WithLabelValues(
			path,
			r.Method,
			strconv.Itoa(statusCode),
		).Observe(duration)
	})
}

// Handler returns an http.Handler that exposes the Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
