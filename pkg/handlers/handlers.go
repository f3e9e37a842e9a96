// Package handlers serves the dashboard, its JSON API and charts.
package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/spencer-p/fishdash/pkg/aggregate"
	"github.com/spencer-p/fishdash/pkg/geo"
	"github.com/spencer-p/fishdash/pkg/locate"
	"github.com/spencer-p/fishdash/pkg/visualize"
)

const dateFormat = "2006-01-02"

//go:embed static
var content embed.FS

var errBadRequest = errors.New("bad request")

// Aggregator produces the data for a location.
type Aggregator interface {
	Aggregate(ctx context.Context, req aggregate.Request) (*aggregate.Result, error)
}

// Resolver finds locations by search text or fixed name.
type Resolver interface {
	Search(ctx context.Context, term string) ([]locate.Location, error)
	Lookup(name string) (locate.Location, error)
	Fixed() []locate.Location
}

type Config struct {
	Aggregator Aggregator
	Resolver   Resolver
	// DefaultLocation is shown to visitors with no saved location.
	DefaultLocation string
	ForecastLimit   int
	// Location is the zone dates in requests are read in.
	Location *time.Location

	SessionKey    string
	EncryptionKey string
	Logger        *slog.Logger
}

type server struct {
	Config
	prefix string
	store  *sessions.CookieStore
}

// Register adds the routes to r, which serves under prefix.
func Register(r *mux.Router, prefix string, cfg Config) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	s := &server{
		Config: cfg,
		prefix: prefix,
		store:  newStore(cfg.SessionKey, cfg.EncryptionKey),
	}

	r.Handle("/", s.makeServerSideIndex()).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/conditions", s.serveConditions).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/locations", s.serveSearch).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/locations/{name}", s.serveLookup).Methods(http.MethodGet)
	r.HandleFunc("/chart/forecast", s.serveForecastChart).Methods(http.MethodGet)

	static, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix(strings.TrimSuffix(prefix, "/")+"/static/", http.FileServer(http.FS(static))))
}

func (s *server) serveConditions(w http.ResponseWriter, r *http.Request) {
	result, _, err := s.fetch(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *server) serveSearch(w http.ResponseWriter, r *http.Request) {
	locs, err := s.Resolver.Search(r.Context(), r.FormValue("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, locs)
}

func (s *server) serveLookup(w http.ResponseWriter, r *http.Request) {
	loc, err := s.Resolver.Lookup(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loc)
}

func (s *server) serveForecastChart(w http.ResponseWriter, r *http.Request) {
	result, loc, err := s.fetch(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := visualize.Forecast(w, loc.Label(), result.Forecast); err != nil {
		s.Logger.Error("render forecast chart", "error", err)
	}
}

// fetch resolves the requested place and date and aggregates it.
func (s *server) fetch(w http.ResponseWriter, r *http.Request) (*aggregate.Result, locate.Location, error) {
	session, _ := s.store.Get(r, sessionName)
	loc, err := s.target(r, session)
	if err != nil {
		return nil, loc, err
	}
	date, err := s.date(r)
	if err != nil {
		return nil, loc, err
	}

	result, err := s.Aggregator.Aggregate(r.Context(), aggregate.Request{
		Coordinates: loc.Coordinates,
		StationID:   loc.StationID,
		BuoyID:      loc.BuoyID,
		Date:        date,
		Limit:       s.limit(r),
	})
	if err != nil {
		return nil, loc, err
	}

	remember(session, loc)
	if err := session.Save(r, w); err != nil {
		s.Logger.Warn("save session", "error", err)
	}
	return result, loc, nil
}

// target picks the location a request is for: a fixed location by name, an
// explicit point, the visitor's last location, or the default.
func (s *server) target(r *http.Request, session *sessions.Session) (locate.Location, error) {
	if name := r.FormValue("location"); name != "" {
		return s.Resolver.Lookup(name)
	}
	if r.FormValue("lat") != "" || r.FormValue("lon") != "" {
		return pointFromForm(r)
	}
	if loc, ok := recall(session); ok {
		return loc, nil
	}
	return s.Resolver.Lookup(s.DefaultLocation)
}

func pointFromForm(r *http.Request) (locate.Location, error) {
	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.FormValue("lon"), 64)
	if latErr != nil || lonErr != nil {
		return locate.Location{}, fmt.Errorf("%w: lat %q lon %q", aggregate.ErrInvalidLocation, r.FormValue("lat"), r.FormValue("lon"))
	}
	c := geo.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return locate.Location{}, fmt.Errorf("%w: %s", aggregate.ErrInvalidLocation, c)
	}
	loc := locate.Location{
		Name:        r.FormValue("name"),
		Coordinates: c,
		StationID:   r.FormValue("station"),
		BuoyID:      r.FormValue("buoy"),
	}
	if loc.Name == "" {
		loc.DisplayName = c.String()
	}
	return loc.WithLabel(), nil
}

func (s *server) date(r *http.Request) (time.Time, error) {
	v := r.FormValue("date")
	if v == "" {
		return time.Time{}, nil
	}
	date, err := time.ParseInLocation(dateFormat, v, s.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", errBadRequest, v)
	}
	return date, nil
}

func (s *server) limit(r *http.Request) int {
	if n, err := strconv.Atoi(r.FormValue("limit")); err == nil && n > 0 {
		return n
	}
	return s.ForecastLimit
}

// statusFor maps an error to the response status shown for it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, aggregate.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, aggregate.ErrNoForecastForDate), errors.Is(err, locate.ErrUnknownLocation):
		return http.StatusNotFound
	case errors.Is(err, aggregate.ErrWeatherSource):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "url", r.URL.String(), "status", code, "error", err)
	} else {
		s.Logger.Info("bad request", "method", r.Method, "url", r.URL.String(), "status", code, "error", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "error", err)
	}
}
