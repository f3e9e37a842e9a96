// Package metrics exports Prometheus metrics for served requests, upstream
// source fetches and the ratings handed out.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "fishdash"

// Fetch outcomes.
const (
	OK    = "ok"
	Error = "error"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: subsystem,
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	upstreamFetch = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "upstream_fetch_seconds",
			Subsystem: subsystem,
			Help:      "Latency of weather, tide and buoy fetches in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0},
		},
		[]string{"source", "outcome"},
	)

	ratings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "fishing_rating_total",
			Subsystem: subsystem,
			Help:      "Fishing ratings computed, by status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		upstreamFetch,
		ratings,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// Recorder is the package's metrics as a value that can be handed to
// components. The zero value records to the default registry.
type Recorder struct{}

// ObserveFetch records how long a fetch from source took and whether it
// failed.
func (Recorder) ObserveFetch(source string, elapsed time.Duration, err error) {
	outcome := OK
	if err != nil {
		outcome = Error
	}
	upstreamFetch.With(prometheus.Labels{
		"source":  source,
		"outcome": outcome,
	}).Observe(elapsed.Seconds())
}

// CountRating counts one computed rating.
func (Recorder) CountRating(status string) {
	ratings.With(prometheus.Labels{"status": status}).Inc()
}

// Unmatched labels requests no route matched.
const Unmatched = "unmatched"

// LatencyHandler records request latency by route template. Use it as mux
// middleware so the matched route is known; requests outside a route are
// labeled Unmatched.
func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := Unmatched
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		rec := &statusRecorder{ResponseWriter: w}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, rec.code(), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() string {
	if s.status == 0 {
		// Nothing written, will be set to 200 by stdlib.
		return "200"
	}
	return strconv.Itoa(s.status)
}
