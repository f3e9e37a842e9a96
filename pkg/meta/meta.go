// Package meta derives fishing ratings from observed and forecast conditions
// and finds good times to go out.
package meta

import (
	"fmt"
	"time"

	"github.com/spencer-p/fishdash/pkg/sunset"
	"github.com/spencer-p/fishdash/pkg/tides"
)

// Sample is the conditions forecast for one slot.
type Sample struct {
	Time       time.Time
	Conditions Conditions
	Tide       tides.Status
}

// GoodTimes joins consecutive daylight samples rated Good or better into
// windows. Each sample covers step from its start.
func GoodTimes(samples []Sample, step time.Duration, sun sunset.SunEvents) []GoodTime {
	result := []GoodTime{}
	var run []Sample
	flush := func() {
		if len(run) > 0 {
			result = append(result, window(run, step))
			run = nil
		}
	}
	for i, s := range samples {
		if !Rate(s.Conditions).Status.AtLeast(Good) || !sun.Daylight(s.Time) {
			flush()
			continue
		}
		// A gap in the series ends a window.
		if len(run) > 0 && s.Time.Sub(samples[i-1].Time) > step {
			flush()
		}
		run = append(run, s)
	}
	flush()
	return result
}

// window summarizes a run of good samples.
func window(run []Sample, step time.Duration) GoodTime {
	best := poor
	var maxWind float64
	var maxWaves float64
	wavesKnown, rising := true, false
	for _, s := range run {
		if r := Rate(s.Conditions); r.Status.AtLeast(best.Status) {
			best = r
		}
		if s.Conditions.WindMPH > maxWind {
			maxWind = s.Conditions.WindMPH
		}
		if ft, ok := s.Conditions.Waves.Feet(); ok {
			if ft > maxWaves {
				maxWaves = ft
			}
		} else {
			wavesKnown = false
		}
		if s.Tide == tides.Rising {
			rising = true
		}
	}

	reasons := []string{
		fmt.Sprintf("conditions are %s", best.Status),
		fmt.Sprintf("winds up to %.0f mph", maxWind),
	}
	if wavesKnown {
		reasons = append(reasons, fmt.Sprintf("waves are %.1f ft or less", maxWaves))
	}
	if rising {
		reasons = append(reasons, "the tide is rising")
	}

	start := run[0].Time
	return GoodTime{
		Time:     start,
		Duration: run[len(run)-1].Time.Add(step).Sub(start),
		Reasons:  reasons,
		Rating:   best,
	}
}
