package tides

import (
	"fmt"
	"time"
)

// Outlook is the state of the tide at one instant.
type Outlook struct {
	Status Status
	Prev   *Extremum
	Next   *Extremum
}

// Analyze finds the extrema surrounding now and infers whether the tide is
// rising or falling. Prev is the latest extremum at or before now and Next the
// earliest strictly after; when either is missing the status is unavailable.
// The extrema need not be sorted.
func Analyze(extrema []Extremum, now time.Time) Outlook {
	var out Outlook
	for i := range extrema {
		e := &extrema[i]
		if e.Time.After(now) {
			if out.Next == nil || e.Time.Before(out.Next.Time) {
				out.Next = e
			}
		} else if out.Prev == nil || e.Time.After(out.Prev.Time) {
			out.Prev = e
		}
	}
	if out.Prev == nil || out.Next == nil {
		return out
	}
	if out.Next.Height > out.Prev.Height {
		out.Status = Rising
	} else {
		out.Status = Falling
	}
	return out
}

// NextTide describes the coming extremum like "High at 3:04 PM".
func (o Outlook) NextTide(loc *time.Location) string {
	if o.Next == nil {
		return Unavailable
	}
	return fmt.Sprintf("%s at %s", o.Next.Kind, o.Next.Time.In(loc).Format(labelFmt))
}

// Extrema finds the highs and lows of a time ordered series of predictions.
// A flat top or bottom yields one extremum at its first sample.
func Extrema(samples []Sample) []Extremum {
	var result []Extremum
	// trend is the sign of the last non-zero change.
	trend := 0
	for i := 1; i < len(samples); i++ {
		d := samples[i].Height - samples[i-1].Height
		if d == 0 {
			continue
		}
		dir := 1
		if d < 0 {
			dir = -1
		}
		if trend != 0 && dir != trend {
			turn := lastChange(samples, i)
			kind := High
			if trend < 0 {
				kind = Low
			}
			result = append(result, Extremum{
				Time:   samples[turn].Time,
				Height: samples[turn].Height,
				Kind:   kind,
			})
		}
		trend = dir
	}
	return result
}

// lastChange returns the first index of the plateau ending at i-1.
func lastChange(samples []Sample, i int) int {
	j := i - 1
	for j > 0 && samples[j-1].Height == samples[j].Height {
		j--
	}
	return j
}

// Nearest returns the sample closest to t, if one lies within the tolerance.
func Nearest(samples []Sample, t time.Time, within time.Duration) (Sample, bool) {
	best, found := Sample{}, false
	var bestDist time.Duration
	for _, s := range samples {
		d := s.Time.Sub(t)
		if d < 0 {
			d = -d
		}
		if d > within {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = s, d, true
		}
	}
	return best, found
}

// Day keeps the samples falling on the calendar day of day, in its location.
func Day(samples []Sample, day time.Time) []Sample {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var result []Sample
	for _, s := range samples {
		if !s.Time.Before(start) && s.Time.Before(end) {
			result = append(result, s)
		}
	}
	return result
}
