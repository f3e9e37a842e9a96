package aggregate

import (
	"math"
	"strings"
	"time"

	"github.com/spencer-p/fishdash/pkg/meta"
	"github.com/spencer-p/fishdash/pkg/sunset"
	"github.com/spencer-p/fishdash/pkg/tides"
	"github.com/spencer-p/fishdash/pkg/timetricks"
	"github.com/spencer-p/fishdash/pkg/units"
	"github.com/spencer-p/fishdash/pkg/waves"
	"github.com/spencer-p/fishdash/pkg/weather"
)

// Widest gap between a reading and the tide sample shown beside it.
const (
	currentTideWithin  = time.Hour
	forecastTideWithin = 90 * time.Minute
)

// Wave sources.
const (
	WavesFromBuoy     = "buoy"
	WavesFromEstimate = "estimate"
)

// CurrentConditions is a rounded snapshot for display.
type CurrentConditions struct {
	Time            time.Time    `json:"time"`
	TempF           int          `json:"temp_f"`
	Condition       string       `json:"condition"`
	WindMPH         int          `json:"wind_mph"`
	WindDirection   string       `json:"wind_direction"`
	Humidity        int          `json:"humidity"`
	VisibilityMiles float64      `json:"visibility_miles"`
	PressureInHg    float64      `json:"pressure_inhg"`
	WaveHeight      waves.Height `json:"wave_height"`
	WaveDirection   string       `json:"wave_direction"`
	// Seconds, zero when unavailable.
	WavePeriod int          `json:"wave_period,omitempty"`
	WaveSource string       `json:"wave_source,omitempty"`
	TideStatus tides.Status `json:"tide_status"`
	NextTide   string       `json:"next_tide"`
	// Feet, nil when unavailable.
	TideHeight *float64   `json:"tide_height"`
	Sunrise    *time.Time `json:"sunrise,omitempty"`
	Sunset     *time.Time `json:"sunset,omitempty"`
}

// ForecastEntry is one forecast slot for display.
type ForecastEntry struct {
	Time       time.Time    `json:"time"`
	Label      string       `json:"label"`
	TempF      int          `json:"temp_f"`
	WaveHeight waves.Height `json:"wave_height"`
	WindMPH    int          `json:"wind_mph"`
	Condition  string       `json:"condition"`
	TideHeight *float64     `json:"tide_height"`
}

func (a *Aggregator) merge(req Request, now, day time.Time, limit int, f *fetched) (*Result, error) {
	marineOK := f.tideErr == nil
	var report tides.Report
	if f.tides != nil {
		report = *f.tides
	}
	// The current card is always read from a window around now.
	nowOK := f.nowTideErr == nil
	var nowReport tides.Report
	if f.nowTides != nil {
		nowReport = *f.nowTides
	}

	result := &Result{
		Location:       req.Coordinates,
		Generated:      now,
		Tides:          tides.Day(report.Heights, day),
		Extrema:        report.Extrema,
		TideCopyright:  report.Copyright,
		TidesAvailable: f.tides != nil,
		Zone:           a.loc,
	}
	if result.Tides == nil {
		result.Tides = []tides.Sample{}
	}

	result.Current = current(f.weather.Current, now, a.loc, &nowReport, f.sea, nowOK)
	result.Rating = meta.Rate(meta.Conditions{
		Waves:           result.Current.WaveHeight,
		WindMPH:         float64(result.Current.WindMPH),
		VisibilityMiles: result.Current.VisibilityMiles,
	})

	entries := f.weather.Forecast
	if !req.Date.IsZero() {
		entries = onDay(entries, day, a.loc)
		if len(entries) == 0 {
			return nil, ErrNoForecastForDate
		}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	result.Forecast = forecast(entries, now, a.loc, report.Heights, marineOK)

	// Sun events span from the requested day through the forecast.
	span := 24 * time.Hour
	if n := len(entries); n > 0 {
		if end := entries[n-1].Time.Sub(timetricks.TrimClock(day)); end > span {
			span = end
		}
	}
	result.Sun = sunset.GetSunEvents(day, span, sunset.NewPlace(req.Coordinates, a.loc))
	if rise, set, ok := result.Sun.Today(); ok {
		result.Current.Sunrise, result.Current.Sunset = &rise, &set
	}

	step := f.weather.Step
	if step <= 0 {
		step = 3 * time.Hour
	}
	result.GoodTimes = meta.GoodTimes(samples(result.Forecast, entries, report.Extrema), step, result.Sun)
	return result, nil
}

func current(obs weather.Observation, now time.Time, loc *time.Location, report *tides.Report, sea *waves.Sea, marineOK bool) CurrentConditions {
	wind := math.Round(obs.WindMPH)
	c := CurrentConditions{
		Time:            obs.Time,
		TempF:           int(math.Round(obs.TempF)),
		Condition:       obs.Condition,
		WindMPH:         int(wind),
		WindDirection:   units.Compass(obs.WindDeg),
		Humidity:        obs.Humidity,
		VisibilityMiles: visibility(obs.VisibilityMeters),
		PressureInHg:    units.PressureInHg(obs.PressureHPa),
		WaveDirection:   tides.Unavailable,
		TideStatus:      tides.StatusUnavailable,
		NextTide:        tides.Unavailable,
	}

	switch {
	case sea != nil && sea.Height.Known():
		c.WaveHeight = sea.Height
		c.WaveSource = WavesFromBuoy
		if sea.Direction >= 0 {
			c.WaveDirection = units.Compass(sea.Direction)
		}
		c.WavePeriod = int(math.Round(sea.Period.Seconds()))
	case marineOK && obs.WindMPH >= 0:
		est := waves.EstimateFromWind(obs.WindMPH)
		c.WaveHeight = waves.Feet(est.HeightFt)
		c.WaveSource = WavesFromEstimate
		// Wind driven seas follow the wind.
		c.WaveDirection = c.WindDirection
		c.WavePeriod = est.PeriodSeconds
	}

	if !marineOK {
		return c
	}
	outlook := tides.Analyze(report.Extrema, now)
	c.TideStatus = outlook.Status
	c.NextTide = outlook.NextTide(loc)
	if s, ok := tides.Nearest(report.Heights, now, currentTideWithin); ok {
		h := s.Height
		c.TideHeight = &h
	}
	return c
}

func forecast(entries []weather.Observation, now time.Time, loc *time.Location, heights []tides.Sample, marineOK bool) []ForecastEntry {
	out := make([]ForecastEntry, 0, len(entries))
	for _, obs := range entries {
		e := ForecastEntry{
			Time:      obs.Time,
			Label:     timetricks.ForecastLabel(obs.Time.In(loc), now),
			TempF:     int(math.Round(obs.TempF)),
			WindMPH:   int(math.Round(obs.WindMPH)),
			Condition: strings.ToLower(obs.Condition),
		}
		if marineOK && obs.WindMPH >= 0 {
			e.WaveHeight = waves.EstimateHeight(obs.WindMPH)
		}
		if s, ok := tides.Nearest(heights, obs.Time, forecastTideWithin); ok {
			h := s.Height
			e.TideHeight = &h
		}
		out = append(out, e)
	}
	return out
}

func samples(entries []ForecastEntry, obs []weather.Observation, extrema []tides.Extremum) []meta.Sample {
	out := make([]meta.Sample, len(entries))
	for i, e := range entries {
		out[i] = meta.Sample{
			Time: e.Time,
			Conditions: meta.Conditions{
				Waves:           e.WaveHeight,
				WindMPH:         float64(e.WindMPH),
				VisibilityMiles: visibility(obs[i].VisibilityMeters),
			},
			Tide: tides.Analyze(extrema, e.Time).Status,
		}
	}
	return out
}

// onDay keeps the observations on the calendar day of day in loc.
func onDay(entries []weather.Observation, day time.Time, loc *time.Location) []weather.Observation {
	var out []weather.Observation
	for _, obs := range entries {
		if timetricks.SameDay(obs.Time.In(loc), day) {
			out = append(out, obs)
		}
	}
	return out
}

// visibility treats a missing reading as no visibility.
func visibility(meters float64) float64 {
	if meters < 0 {
		return 0
	}
	return units.VisibilityMiles(meters)
}
