package meta

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/fishdash/pkg/waves"
)

func TestRate(t *testing.T) {
	table := []struct {
		in   Conditions
		want Rating
	}{
		{Conditions{waves.Feet(1.5), 8, 9}, Rating{Excellent, Emerald}},
		{Conditions{waves.Feet(2), 10, 8}, Rating{Excellent, Emerald}},
		{Conditions{waves.Feet(0), 0, 10}, Rating{Excellent, Emerald}},
		{Conditions{waves.Feet(3), 12, 7}, Rating{Good, Teal}},
		{Conditions{waves.Feet(4), 18, 5}, Rating{Fair, Amber}},
		{Conditions{waves.Feet(5), 20, 4}, Rating{Fair, Amber}},
		{Conditions{waves.Feet(6), 25, 2}, Rating{Poor, Rose}},
		{Conditions{waves.Feet(1), 1, 3.9}, Rating{Poor, Rose}},
		{Conditions{waves.Unavailable, 8, 9}, Rating{Good, Emerald}},
		{Conditions{waves.Unavailable, 0, 10}, Rating{Good, Emerald}},
		{Conditions{waves.Unavailable, 15, 6}, Rating{Fair, Amber}},
		{Conditions{waves.Unavailable, 16, 10}, Rating{Poor, Rose}},
		{Conditions{waves.Unavailable, 5, 5}, Rating{Poor, Rose}},
	}
	for _, tc := range table {
		t.Run(fmt.Sprintf("%s/%v/%v", tc.in.Waves, tc.in.WindMPH, tc.in.VisibilityMiles), func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Rate(tc.in)); diff != "" {
				t.Errorf("Rate (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestRateUnavailableNeverExcellent(t *testing.T) {
	for wind := 0.0; wind <= 30; wind += 0.5 {
		for vis := 0.0; vis <= 12; vis += 0.5 {
			got := Rate(Conditions{waves.Unavailable, wind, vis})
			if got.Status == Excellent {
				t.Fatalf("wind %v vis %v rated Excellent without wave data", wind, vis)
			}
		}
	}
}

func TestRateMonotonic(t *testing.T) {
	wavesSteps := []float64{0, 1, 2, 2.5, 3.5, 4, 5, 6, 9}
	windSteps := []float64{0, 5, 10, 12, 15, 18, 20, 25}
	visSteps := []float64{0, 2, 4, 5, 6, 7, 8, 10}

	rate := func(w, wind, vis float64) Status {
		return Rate(Conditions{waves.Feet(w), wind, vis}).Status
	}
	for i, w := range wavesSteps {
		for j, wind := range windSteps {
			for k, vis := range visSteps {
				base := rate(w, wind, vis)
				if i > 0 && !rate(wavesSteps[i-1], wind, vis).AtLeast(base) {
					t.Errorf("calmer waves than %v lowered the rating", w)
				}
				if j > 0 && !rate(w, windSteps[j-1], vis).AtLeast(base) {
					t.Errorf("lighter wind than %v lowered the rating", wind)
				}
				if k+1 < len(visSteps) && !rate(w, wind, visSteps[k+1]).AtLeast(base) {
					t.Errorf("better visibility than %v lowered the rating", vis)
				}
			}
		}
	}
}
