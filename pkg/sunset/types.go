package sunset

import (
	"fmt"
	"time"

	"github.com/spencer-p/fishdash/pkg/geo"
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	geo.Coordinates
	Location *time.Location
}

// NewPlace pairs coordinates with the zone their events are reported in. A
// nil location means local time.
func NewPlace(c geo.Coordinates, loc *time.Location) Place {
	if loc == nil {
		loc = time.Local
	}
	return Place{Coordinates: c, Location: loc}
}

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a sunrise or sunset event.
type SunEvent struct {
	Time  time.Time `json:"time"`
	Event Event     `json:"event"`
}

func (s *SunEvent) String() string {
	return fmt.Sprintf("%s %s", s.Time.Format(time.RFC822), s.Event)
}

// Event encodes a sunrise or sunset event.
type Event bool

const (
	Sunrise Event = true
	Sunset  Event = false
)

func (e Event) String() string {
	if e == Sunrise {
		return "Sunrise"
	}
	return "Sunset"
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
