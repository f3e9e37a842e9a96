package sunset

import (
	"testing"
	"time"

	"github.com/spencer-p/fishdash/pkg/geo"
)

var santaCruz = NewPlace(geo.Coordinates{Lat: 36.9741, Lon: -122.0308}, mustLoad("America/Los_Angeles"))

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func TestGetSunEvents(t *testing.T) {
	start := time.Date(2020, time.October, 25, 0, 0, 0, 0, santaCruz.Location)
	events := GetSunEvents(start, 3*24*time.Hour, santaCruz)
	if len(events) != 6 {
		t.Fatalf("got %d events, want 6", len(events))
	}
	for i, e := range events {
		if want := Event(i%2 == 0); e.Event != want {
			t.Errorf("event %d is %s, want %s", i, e.Event, want)
		}
		if day := start.AddDate(0, 0, i/2); e.Time.Day() != day.Day() {
			t.Errorf("event %d on %s, want day %d", i, e.Time, day.Day())
		}
	}
	rise, set, ok := events.Today()
	if !ok {
		t.Fatal("no events for the first day")
	}
	if h := rise.Hour(); h < 6 || h > 8 {
		t.Errorf("sunrise at %s, expected early morning", rise.Format(time.Kitchen))
	}
	if h := set.Hour(); h < 17 || h > 19 {
		t.Errorf("sunset at %s, expected early evening", set.Format(time.Kitchen))
	}
}

func TestDaylight(t *testing.T) {
	start := time.Date(2020, time.October, 25, 0, 0, 0, 0, santaCruz.Location)
	events := GetSunEvents(start, 24*time.Hour, santaCruz)

	table := []struct {
		t    time.Time
		want bool
	}{
		{start.Add(3 * time.Hour), false},
		{start.Add(12 * time.Hour), true},
		{start.Add(22 * time.Hour), false},
		{start.Add(36 * time.Hour), false},
	}
	for _, tc := range table {
		t.Run(tc.t.Format(time.Kitchen), func(t *testing.T) {
			if got := events.Daylight(tc.t); got != tc.want {
				t.Errorf("Daylight(%s) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}
