package meta

import (
	"fmt"

	"github.com/spencer-p/fishdash/pkg/waves"
)

// Status is a fishing suitability tier, best first.
type Status uint

const (
	Excellent Status = iota
	Good
	Fair
	Poor
)

func (s Status) String() string {
	switch s {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case Fair:
		return "Fair"
	case Poor:
		return "Poor"
	default:
		return fmt.Sprintf("Status(%d)", uint(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if s > Poor {
		return nil, fmt.Errorf("invalid status %d", uint(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for c := Excellent; c <= Poor; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// AtLeast reports whether s is as good as other or better.
func (s Status) AtLeast(other Status) bool {
	return s <= other
}

// Color tokens the dashboard styles a rating with.
const (
	Emerald = "emerald"
	Teal    = "teal"
	Amber   = "amber"
	Rose    = "rose"
)

// Rating is a derived fishing status with the color it is shown in.
type Rating struct {
	Status Status `json:"status"`
	Color  string `json:"color"`
}

// Conditions is the set of observations a fishing rating is derived from.
type Conditions struct {
	Waves           waves.Height
	WindMPH         float64
	VisibilityMiles float64
}

// tier is one row of a rating table. A condition passes when waves and wind
// are at most the limits and visibility is at least the minimum.
type tier struct {
	rating        Rating
	maxWavesFt    float64
	maxWindMPH    float64
	minVisibility float64
}

var fullTable = []tier{
	{Rating{Excellent, Emerald}, 2, 10, 8},
	{Rating{Good, Teal}, 3.5, 15, 6},
	{Rating{Fair, Amber}, 5, 20, 4},
}

// degradedTable rates on wind and visibility alone when wave height is
// unavailable. Excellent is unreachable.
var degradedTable = []tier{
	{rating: Rating{Good, Emerald}, maxWindMPH: 10, minVisibility: 8},
	{rating: Rating{Fair, Amber}, maxWindMPH: 15, minVisibility: 6},
}

var poor = Rating{Poor, Rose}

// Rate classifies conditions into the first tier they satisfy.
func Rate(c Conditions) Rating {
	ft, known := c.Waves.Feet()
	if !known {
		for _, t := range degradedTable {
			if c.WindMPH <= t.maxWindMPH && c.VisibilityMiles >= t.minVisibility {
				return t.rating
			}
		}
		return poor
	}
	for _, t := range fullTable {
		if ft <= t.maxWavesFt && c.WindMPH <= t.maxWindMPH && c.VisibilityMiles >= t.minVisibility {
			return t.rating
		}
	}
	return poor
}
