// Package waves approximates sea state from wind when no buoy is reporting,
// and carries wave heights that may be unavailable.
package waves

import (
	"math"
	"time"
)

const (
	minPeriod = 4  // seconds
	maxPeriod = 12 // seconds
)

// step is one row of the Beaufort-like table: winds below mph raise seas of
// heightFt.
type step struct {
	mph      float64
	heightFt float64
}

var table = []step{
	{7, 0.5},
	{11, 1},
	{16, 2},
	{21, 3},
	{27, 4},
	{33, 5.5},
	{40, 7},
}

// overflowFt is the height for winds at or above the last step.
const overflowFt = 9

// Estimate is an approximate sea state derived from wind speed.
type Estimate struct {
	HeightFt      float64
	PeriodSeconds int
}

// EstimateFromWind approximates waves for a non-negative wind speed in mph.
// Callers must reject negative speeds.
func EstimateFromWind(mph float64) Estimate {
	return Estimate{
		HeightFt:      heightFor(mph),
		PeriodSeconds: periodFor(mph),
	}
}

// EstimateHeight is EstimateFromWind's height as a known Height.
func EstimateHeight(mph float64) Height {
	return Feet(heightFor(mph))
}

func heightFor(mph float64) float64 {
	for _, s := range table {
		if mph < s.mph {
			return s.heightFt
		}
	}
	return overflowFt
}

func periodFor(mph float64) int {
	// Halves round to even: 5 mph is 4s, 15 mph is 6s, 25 mph is 8s.
	p := int(math.RoundToEven(3.5 + mph/5))
	if p < minPeriod {
		return minPeriod
	}
	if p > maxPeriod {
		return maxPeriod
	}
	return p
}

// Sea is a sea state measured directly by a buoy.
type Sea struct {
	Height Height
	// Direction waves come from, in degrees. Negative when not reported.
	Direction float64
	// Dominant wave period. Zero when not reported.
	Period   time.Duration
	Observed time.Time
	Station  string
}
