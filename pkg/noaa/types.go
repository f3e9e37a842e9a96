package noaa

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spencer-p/fishdash/pkg/tides"
)

const predTimeFormat = "2006-01-02 15:04"

// Prediction holds a single tide prediction. Type is only present for hilo
// queries.
type Prediction struct {
	// UTC time of tide prediction
	Time Time `json:"t"`
	// Height in feet
	Height Height `json:"v"`
	// High or Low tide, "H" or "L" when encoded
	Type Tide `json:"type"`
}

// Verify the custom types can be unmarshaled
var _ json.Unmarshaler = &Time{}
var _ json.Unmarshaler = new(Height)
var _ json.Unmarshaler = new(Tide)

// Predictions is a time series of Prediction.
type Predictions []Prediction

// result is the data type returned by the NOAA API. Errors come back with a
// 200 and an error object instead of predictions.
type result struct {
	Predictions Predictions `json:"predictions"`
	Error       *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Interval selects hilo extrema or an hourly series.
type Interval string

const (
	HiLo   Interval = "hilo"
	Hourly Interval = "h"
)

func (i Interval) Valid() bool {
	return i == HiLo || i == Hourly
}

// PredictionQuery is used to query tide data at a station in a given time
// window; see Client.Predictions.
type PredictionQuery struct {
	Start    time.Time
	Duration time.Duration
	Station  string
	Interval Interval
}

type Time time.Time

func (t *Time) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("prediction time %q not string: %w", buf, err)
	}
	parsed, err := time.ParseInLocation(predTimeFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("prediction time %q not in fmt %q: %w", s, predTimeFormat, err)
	}
	*t = Time(parsed)
	return nil
}

type Height float64

func (h *Height) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("water height %q not string: %w", buf, err)
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("water height %q not a float: %w", s, err)
	}
	*h = Height(parsed)
	return nil
}

type Tide uint

const (
	HighTide Tide = iota
	LowTide
)

func (t Tide) Valid() bool {
	return t == HighTide || t == LowTide
}

func (t *Tide) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("tide %q not a string: %w", buf, err)
	}
	switch s {
	case "H", "HH":
		*t = HighTide
	case "L", "LL":
		*t = LowTide
	default:
		return fmt.Errorf("invalid tide type %q", s)
	}
	return nil
}

func (t Tide) String() string {
	switch t {
	case HighTide:
		return "H"
	case LowTide:
		return "L"
	default:
		return "invalid"
	}
}

// Kind maps the NOAA tide code onto tides.Kind.
func (t Tide) Kind() tides.Kind {
	if t == LowTide {
		return tides.Low
	}
	return tides.High
}

func (p Prediction) String() string {
	return fmt.Sprintf("{t: %s, v: %f, type: %s}",
		time.Time(p.Time).Format(time.RFC822),
		p.Height,
		p.Type.String())
}

// Extrema converts hilo predictions into tide extrema sorted by time.
func (preds Predictions) Extrema() []tides.Extremum {
	out := make([]tides.Extremum, 0, len(preds))
	for _, p := range preds {
		out = append(out, tides.Extremum{
			Time:   time.Time(p.Time),
			Height: float64(p.Height),
			Kind:   p.Type.Kind(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// Samples converts a height series into tide samples sorted by time.
func (preds Predictions) Samples() []tides.Sample {
	out := make([]tides.Sample, 0, len(preds))
	for _, p := range preds {
		out = append(out, tides.Sample{
			Time:   time.Time(p.Time),
			Height: float64(p.Height),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}
