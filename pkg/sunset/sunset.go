package sunset

import (
	"math"
	"sort"
	"time"

	"github.com/spencer-p/fishdash/pkg/timetricks"

	"github.com/keep94/sunrise"
)

// GetSunEvents returns a list of ordered sun events from the starting time to
// the end time in the given place. The first result will always be a sunrise.
func GetSunEvents(start time.Time, duration time.Duration, place Place) SunEvents {
	start = start.In(place.Location)

	var s sunrise.Sunrise
	s.Around(place.Lat, place.Lon, start)

	// The sunrise package is not very clean with its dates; walk to the
	// sunrise of the starting day from either side.
	for i := 0; i < 3 && s.Sunrise().In(place.Location).Before(timetricks.TrimClock(start)); i++ {
		s.AddDays(1)
	}
	for i := 0; i < 3 && !s.Sunrise().In(place.Location).Before(timetricks.TrimClock(start).AddDate(0, 0, 1)); i++ {
		s.AddDays(-1)
	}

	// Get sunrises and sunsets for the given number of days.
	numDays := int(math.Ceil(duration.Hours() / 24))
	if numDays < 1 {
		numDays = 1
	}
	ret := make(SunEvents, numDays*2)
	for i := 0; i < numDays*2; i += 2 {
		ret[i] = SunEvent{s.Sunrise().In(place.Location), Sunrise}
		ret[i+1] = SunEvent{s.Sunset().In(place.Location), Sunset}
		s.AddDays(1)
	}
	return ret
}

// Daylight reports whether t falls between a sunrise and the following
// sunset of events.
func (events SunEvents) Daylight(t time.Time) bool {
	i, ok := events.lastBefore(t)
	if !ok {
		return false
	}
	if events[i].Event != Sunrise {
		return false
	}
	// A trailing sunrise with no sunset after it is outside the known range.
	return i+1 < len(events)
}

// Today returns the sunrise and sunset of the first day of events.
func (events SunEvents) Today() (rise, set time.Time, ok bool) {
	if len(events) < 2 {
		return time.Time{}, time.Time{}, false
	}
	return events[0].Time, events[1].Time, true
}

// lastBefore returns the index of the last event at or before t.
func (events SunEvents) lastBefore(t time.Time) (int, bool) {
	i := sort.Search(len(events), func(i int) bool {
		return events[i].Time.After(t)
	})
	if i == 0 {
		return -1, false
	}
	return i - 1, true
}
