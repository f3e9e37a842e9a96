// Package locate resolves what a user typed into places the dashboard can be
// shown for.
package locate

import (
	"context"
	"errors"
	"strings"

	"github.com/spencer-p/fishdash/pkg/geo"
)

var ErrUnknownLocation = errors.New("unknown location")

// Location is a resolved place.
type Location struct {
	Name    string `json:"name" yaml:"name"`
	State   string `json:"state,omitempty" yaml:"state"`
	Country string `json:"country" yaml:"country"`

	geo.Coordinates `yaml:",inline"`

	// NOAA tide station serving the place, if known.
	StationID string `json:"station_id,omitempty" yaml:"noaa_station"`

	// NDBC buoy reporting waves nearby, if any.
	BuoyID string `json:"buoy_id,omitempty" yaml:"ndbc_station"`

	DisplayName string `json:"display_name" yaml:"-"`
}

// Label formats the location as "Name, State, Country", leaving out empty
// parts.
func (l Location) Label() string {
	if l.DisplayName != "" {
		return l.DisplayName
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.State, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// WithLabel returns l with DisplayName filled in.
func (l Location) WithLabel() Location {
	l.DisplayName = l.Label()
	return l
}

// Geocoder finds candidate places for free text.
type Geocoder interface {
	Direct(ctx context.Context, query string, limit int) ([]Location, error)
}
