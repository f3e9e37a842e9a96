// Package tides analyzes tide predictions: which way the water is moving, when
// it turns next, and where the highs and lows are in a raw series.
package tides

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spencer-p/fishdash/pkg/geo"
)

const labelFmt = "3:04 PM"

// Unavailable is shown in place of any tide field no source could provide.
const Unavailable = "unavailable"

// Kind is a high or low tide.
type Kind uint

const (
	High Kind = iota
	Low
)

func (k Kind) String() string {
	switch k {
	case High:
		return "High"
	case Low:
		return "Low"
	default:
		return "invalid"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k != High && k != Low {
		return nil, fmt.Errorf("invalid tide kind %d", k)
	}
	return []byte(k.String()), nil
}

// Extremum is a single high or low tide event.
type Extremum struct {
	Time time.Time `json:"time"`
	// Height in feet
	Height float64 `json:"height"`
	Kind   Kind    `json:"type"`
}

func (e Extremum) String() string {
	return fmt.Sprintf("{t: %s, v: %f, type: %s}", e.Time.Format(time.RFC822), e.Height, e.Kind)
}

// Sample is the predicted water height at one instant.
type Sample struct {
	Time time.Time `json:"time"`
	// Height in feet
	Height float64 `json:"height"`
}

// Label is the sample's time of day in loc, as shown on the tide chart.
func (s Sample) Label(loc *time.Location) string {
	return s.Time.In(loc).Format(labelFmt)
}

// Query names the place a tide source should predict for. Sources that look
// up their own station ignore StationID.
type Query struct {
	geo.Coordinates
	StationID string
}

// Report is what a tide source knows about one calendar day at a place.
type Report struct {
	Station   string
	Extrema   []Extremum
	Heights   []Sample
	Copyright string
}

// Status is the direction the tide is moving.
type Status uint

const (
	StatusUnavailable Status = iota
	Rising
	Falling
)

func (s Status) String() string {
	switch s {
	case Rising:
		return "Rising"
	case Falling:
		return "Falling"
	default:
		return Unavailable
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
