package tides

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2024, time.June, 1, h, m, 0, 0, time.UTC)
}

func TestAnalyze(t *testing.T) {
	table := []struct {
		name     string
		extrema  []Extremum
		want     Status
		nextTide string
	}{{
		name: "empty",
		want: StatusUnavailable, nextTide: Unavailable,
	}, {
		name: "rising",
		extrema: []Extremum{
			{Time: at(9, 0), Height: 2.0, Kind: Low},
			{Time: at(15, 10), Height: 4.0, Kind: High},
		},
		want: Rising, nextTide: "High at 3:10 PM",
	}, {
		name: "falling",
		extrema: []Extremum{
			{Time: at(9, 0), Height: 4.0, Kind: High},
			{Time: at(15, 10), Height: 2.0, Kind: Low},
		},
		want: Falling, nextTide: "Low at 3:10 PM",
	}, {
		name: "only future",
		extrema: []Extremum{
			{Time: at(13, 0), Height: 4.0, Kind: High},
			{Time: at(19, 0), Height: 1.0, Kind: Low},
		},
		want: StatusUnavailable, nextTide: "High at 1:00 PM",
	}, {
		name: "only past",
		extrema: []Extremum{
			{Time: at(1, 0), Height: 4.0, Kind: High},
			{Time: at(7, 0), Height: 1.0, Kind: Low},
		},
		want: StatusUnavailable, nextTide: Unavailable,
	}, {
		name: "extremum exactly now counts as previous",
		extrema: []Extremum{
			{Time: at(12, 0), Height: 5.0, Kind: High},
			{Time: at(18, 0), Height: 0.5, Kind: Low},
		},
		want: Falling, nextTide: "Low at 6:00 PM",
	}, {
		name: "unsorted input",
		extrema: []Extremum{
			{Time: at(23, 0), Height: 5.5, Kind: High},
			{Time: at(10, 0), Height: 1.0, Kind: Low},
			{Time: at(16, 30), Height: 0.2, Kind: Low},
			{Time: at(4, 0), Height: 5.0, Kind: High},
		},
		want: Falling, nextTide: "Low at 4:30 PM",
	}, {
		name: "equal heights fall",
		extrema: []Extremum{
			{Time: at(9, 0), Height: 3.0, Kind: Low},
			{Time: at(15, 0), Height: 3.0, Kind: High},
		},
		want: Falling, nextTide: "High at 3:00 PM",
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(tc.extrema, now)
			if got.Status != tc.want {
				t.Errorf("status = %s, want %s", got.Status, tc.want)
			}
			if desc := got.NextTide(time.UTC); desc != tc.nextTide {
				t.Errorf("next tide = %q, want %q", desc, tc.nextTide)
			}
		})
	}
}

func TestExtrema(t *testing.T) {
	heights := []float64{1, 2, 3, 2, 1, 1, 2, 4, 4, 3}
	samples := make([]Sample, len(heights))
	for i, h := range heights {
		samples[i] = Sample{Time: at(i, 0), Height: h}
	}

	want := []Extremum{
		{Time: at(2, 0), Height: 3, Kind: High},
		{Time: at(4, 0), Height: 1, Kind: Low},
		{Time: at(7, 0), Height: 4, Kind: High},
	}
	if diff := cmp.Diff(want, Extrema(samples)); diff != "" {
		t.Errorf("Extrema (-want,+got):\n%s", diff)
	}

	if got := Extrema(samples[:2]); len(got) != 0 {
		t.Errorf("monotonic series has extrema %v", got)
	}
}

func TestNearest(t *testing.T) {
	samples := []Sample{
		{Time: at(10, 0), Height: 1},
		{Time: at(10, 30), Height: 2},
		{Time: at(11, 0), Height: 3},
	}
	table := []struct {
		t      time.Time
		want   float64
		wantOK bool
	}{
		{at(10, 20), 2, true},
		{at(10, 0), 1, true},
		{at(11, 40), 3, true},
		{at(13, 0), 0, false},
	}
	for _, tc := range table {
		t.Run(tc.t.Format(labelFmt), func(t *testing.T) {
			got, ok := Nearest(samples, tc.t, time.Hour)
			if ok != tc.wantOK || got.Height != tc.want {
				t.Errorf("Nearest = (%v, %v), want (%v, %v)", got.Height, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestDay(t *testing.T) {
	samples := []Sample{
		{Time: at(0, 0).Add(-time.Minute)},
		{Time: at(0, 0)},
		{Time: at(23, 59)},
		{Time: at(0, 0).AddDate(0, 0, 1)},
	}
	got := Day(samples, at(12, 0))
	if len(got) != 2 {
		t.Errorf("Day kept %d samples, want 2", len(got))
	}
}

func ExampleOutlook_NextTide() {
	extrema := []Extremum{
		{Time: at(6, 12), Height: -0.4, Kind: Low},
		{Time: at(12, 45), Height: 5.1, Kind: High},
	}
	o := Analyze(extrema, now)
	fmt.Println(o.Status)
	fmt.Println(o.NextTide(time.UTC))
	// Output:
	// Rising
	// High at 12:45 PM
}
