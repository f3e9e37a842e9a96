package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLatencyHandlerRecordsStatus(t *testing.T) {
	table := []struct {
		path    string
		route   string
		handler http.HandlerFunc
		code    string
	}{{
		path:    "/ok",
		route:   "/ok",
		handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("hi")) },
		code:    "200",
	}, {
		path:    "/missing",
		route:   "/missing",
		handler: http.NotFound,
		code:    "404",
	}, {
		path:    "/silent",
		route:   "/silent",
		handler: func(w http.ResponseWriter, r *http.Request) {},
		code:    "200",
	}, {
		path:  "/upstream",
		route: "/upstream",
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.WriteHeader(http.StatusOK)
		},
		code: "502",
	}}

	for _, test := range table {
		t.Run(test.path, func(t *testing.T) {
			r := mux.NewRouter()
			r.Use(LatencyHandler)
			r.Handle(test.route, test.handler)
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, test.path, nil))

			// Deleting reports whether the series was recorded.
			if !requestLatency.DeleteLabelValues(http.MethodGet, test.route, test.code) {
				t.Errorf("no latency recorded for %s with code %s", test.route, test.code)
			}
		})
	}
}

func TestLatencyHandlerLabelsByRoute(t *testing.T) {
	r := mux.NewRouter()
	r.Use(LatencyHandler)
	r.HandleFunc("/api/v1/locations/{name}", func(w http.ResponseWriter, r *http.Request) {})
	r.NotFoundHandler = LatencyHandler(http.NotFoundHandler())

	for _, name := range []string{"Monterey%20Bay", "Santa%20Cruz", "Atlantis"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/locations/"+name, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere/at/all", nil))

	if !requestLatency.DeleteLabelValues(http.MethodGet, "/api/v1/locations/{name}", "200") {
		t.Error("no latency recorded under the route template")
	}
	if requestLatency.DeleteLabelValues(http.MethodGet, "/api/v1/locations/Atlantis", "200") {
		t.Error("latency recorded under a raw path")
	}
	if !requestLatency.DeleteLabelValues(http.MethodGet, Unmatched, "404") {
		t.Error("no latency recorded for an unmatched request")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	before := testutil.ToFloat64(ratings.WithLabelValues("Good"))
	r.CountRating("Good")
	r.CountRating("Good")
	if got := testutil.ToFloat64(ratings.WithLabelValues("Good")) - before; got != 2 {
		t.Errorf("rating count grew by %v, want 2", got)
	}

	r.ObserveFetch("tides", 20*time.Millisecond, errors.New("boom"))
	r.ObserveFetch("weather", 20*time.Millisecond, nil)
	if n := testutil.CollectAndCount(upstreamFetch); n < 2 {
		t.Errorf("got %d fetch series, want at least 2", n)
	}
}
