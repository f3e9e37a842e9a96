// Package aggregate joins weather, tide and buoy data for one place into the
// conditions, forecast and tide chart the dashboard shows.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/spencer-p/fishdash/pkg/geo"
	"github.com/spencer-p/fishdash/pkg/meta"
	"github.com/spencer-p/fishdash/pkg/sunset"
	"github.com/spencer-p/fishdash/pkg/tides"
	"github.com/spencer-p/fishdash/pkg/timetricks"
	"github.com/spencer-p/fishdash/pkg/waves"
	"github.com/spencer-p/fishdash/pkg/weather"
)

// MaxForecast is the most forecast entries a request can ask for.
const MaxForecast = 40

var (
	ErrInvalidLocation   = errors.New("invalid location")
	ErrWeatherSource     = errors.New("weather source failed")
	ErrTideSource        = errors.New("tide source failed")
	ErrNoForecastForDate = errors.New("no forecast for date")
)

// WeatherSource is mandatory: without it there is nothing to show.
type WeatherSource interface {
	Weather(ctx context.Context, at geo.Coordinates, limit int) (*weather.Report, error)
}

// TideSource is optional. Its failures degrade tide and wave fields to
// unavailable.
type TideSource interface {
	Tides(ctx context.Context, q tides.Query, day time.Time) (*tides.Report, error)
}

// BuoySource reports measured waves at a buoy station.
type BuoySource interface {
	Latest(ctx context.Context, station string) (*waves.Sea, error)
}

// Metrics records fetches and ratings.
type Metrics interface {
	ObserveFetch(source string, elapsed time.Duration, err error)
	CountRating(status string)
}

type Config struct {
	Weather WeatherSource
	// Tides and Buoy may be nil.
	Tides TideSource
	Buoy  BuoySource
	// BuoyStation is used when a request names none.
	BuoyStation string

	Clock clockwork.Clock
	// Location is the zone days and labels are computed in. Defaults to
	// local time.
	Location *time.Location
	Logger   *slog.Logger
	Metrics  Metrics
}

// Aggregator answers Aggregate requests. It is safe for concurrent use.
type Aggregator struct {
	weather     WeatherSource
	tides       TideSource
	buoy        BuoySource
	buoyStation string
	clock       clockwork.Clock
	loc         *time.Location
	logger      *slog.Logger
	metrics     Metrics
}

func New(cfg Config) *Aggregator {
	a := &Aggregator{
		weather:     cfg.Weather,
		tides:       cfg.Tides,
		buoy:        cfg.Buoy,
		buoyStation: cfg.BuoyStation,
		clock:       cfg.Clock,
		loc:         cfg.Location,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
	if a.clock == nil {
		a.clock = clockwork.NewRealClock()
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.metrics == nil {
		a.metrics = nopMetrics{}
	}
	return a
}

// Request selects what to aggregate.
type Request struct {
	geo.Coordinates
	// NOAA tide station, for sources that need one.
	StationID string
	// NDBC buoy; the configured default is used when empty.
	BuoyID string
	// Date restricts the forecast to one calendar day. Zero means the next
	// Limit entries from now.
	Date time.Time
	// Limit caps the forecast entries. Zero or less means MaxForecast.
	Limit int
}

// Result is everything the dashboard renders for a request.
type Result struct {
	Location  geo.Coordinates   `json:"location"`
	Generated time.Time         `json:"generated"`
	Current   CurrentConditions `json:"current"`
	Forecast  []ForecastEntry   `json:"forecast"`
	// Tide heights for the requested day, empty when unavailable.
	Tides         []tides.Sample   `json:"tides"`
	Extrema       []tides.Extremum `json:"extrema"`
	Rating        meta.Rating      `json:"rating"`
	GoodTimes     []meta.GoodTime  `json:"good_times"`
	Sun           sunset.SunEvents `json:"sun"`
	TideCopyright string           `json:"tide_copyright,omitempty"`
	// TidesAvailable is false when no tide source answered.
	TidesAvailable bool `json:"tides_available"`

	Zone *time.Location `json:"-"`
}

// fetched holds what the concurrent fetches returned.
type fetched struct {
	weather *weather.Report
	tides   *tides.Report
	tideErr error
	// nowTides brackets the current time when the requested day is not
	// today. Otherwise it is the same as tides.
	nowTides   *tides.Report
	nowTideErr error
	sea        *waves.Sea
}

// Aggregate fetches weather, tides and buoy data concurrently and merges
// them. Weather failures fail the request; tide and buoy failures only
// degrade it.
func (a *Aggregator) Aggregate(ctx context.Context, req Request) (*Result, error) {
	if !req.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocation, req.Coordinates)
	}

	now := a.clock.Now().In(a.loc)
	day := now
	limit := clampLimit(req.Limit)
	fetchLimit := limit
	if !req.Date.IsZero() {
		day = time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 12, 0, 0, 0, a.loc)
		fetchLimit = MaxForecast
	}

	f, err := a.fetch(ctx, req, now, day, fetchLimit)
	if err != nil {
		return nil, err
	}
	for _, err := range []error{f.tideErr, f.nowTideErr} {
		if err != nil {
			a.logger.Warn("tide data unavailable",
				"location", req.Coordinates.String(),
				"station", req.StationID,
				"error", err)
		}
	}

	result, err := a.merge(req, now, day, limit, f)
	if err != nil {
		return nil, err
	}
	a.metrics.CountRating(result.Rating.Status.String())
	return result, nil
}

func (a *Aggregator) fetch(ctx context.Context, req Request, now, day time.Time, limit int) (*fetched, error) {
	var f fetched
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := a.clock.Now()
		report, err := a.weather.Weather(gctx, req.Coordinates, limit)
		a.metrics.ObserveFetch("weather", a.clock.Since(start), err)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWeatherSource, err)
		}
		f.weather = report
		return nil
	})

	q := tides.Query{Coordinates: req.Coordinates, StationID: req.StationID}
	if a.tides != nil {
		g.Go(func() error {
			f.tides, f.tideErr = a.fetchTides(gctx, q, day)
			return nil
		})
		if !timetricks.SameDay(day, now) {
			g.Go(func() error {
				f.nowTides, f.nowTideErr = a.fetchTides(gctx, q, now)
				return nil
			})
		}
	}

	station := req.BuoyID
	if station == "" {
		station = a.buoyStation
	}
	if a.buoy != nil && station != "" {
		g.Go(func() error {
			start := a.clock.Now()
			sea, err := a.buoy.Latest(gctx, station)
			a.metrics.ObserveFetch("buoy", a.clock.Since(start), err)
			if err != nil {
				a.logger.Info("buoy data unavailable, estimating waves", "station", station, "error", err)
				return nil
			}
			f.sea = sea
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if a.tides != nil && timetricks.SameDay(day, now) {
		f.nowTides, f.nowTideErr = f.tides, f.tideErr
	}
	return &f, nil
}

func (a *Aggregator) fetchTides(ctx context.Context, q tides.Query, day time.Time) (*tides.Report, error) {
	start := a.clock.Now()
	report, err := a.tides.Tides(ctx, q, day)
	a.metrics.ObserveFetch("tides", a.clock.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTideSource, err)
	}
	return report, nil
}

func clampLimit(n int) int {
	if n <= 0 || n > MaxForecast {
		return MaxForecast
	}
	return n
}

type nopMetrics struct{}

func (nopMetrics) ObserveFetch(string, time.Duration, error) {}
func (nopMetrics) CountRating(string)                        {}
