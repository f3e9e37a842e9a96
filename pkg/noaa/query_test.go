package noaa

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/fishdash/pkg/tides"
)

const montereyStation = "9413450"

func TestQueryURL(t *testing.T) {
	in := PredictionQuery{
		Start:    time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC),
		Duration: 48 * time.Hour,
		Station:  montereyStation,
		Interval: Hourly,
	}
	want := "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter?application=fishdash&begin_date=20200105&datum=MLLW&end_date=20200107&format=json&interval=h&product=predictions&station=9413450&time_zone=gmt&units=english"
	got, err := in.url(DefaultURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want != got.String() {
		t.Errorf("got  %q", got)
		t.Errorf("want %q", want)
	}
}

func TestQueryDefaultsToHiLo(t *testing.T) {
	q := PredictionQuery{Station: montereyStation}
	if got := q.build().Get("interval"); got != "hilo" {
		t.Errorf("interval = %q, want hilo", got)
	}
}

const hiloBody = `{"predictions": [
	{"t": "2024-05-31 20:00", "v": "5.000", "type": "H"},
	{"t": "2024-06-01 02:00", "v": "1.000", "type": "L"},
	{"t": "2024-06-01 08:00", "v": "4.000", "type": "H"},
	{"t": "2024-06-01 14:00", "v": "0.500", "type": "L"},
	{"t": "2024-06-01 20:00", "v": "5.500", "type": "H"},
	{"t": "2024-06-02 02:00", "v": "1.500", "type": "L"}
]}`

const hourlyBody = `{"predictions": [
	{"t": "2024-06-01 00:00", "v": "3.000"},
	{"t": "2024-06-01 01:00", "v": "2.000"},
	{"t": "2024-06-01 02:00", "v": "1.000"},
	{"t": "2024-06-01 03:00", "v": "2.000"},
	{"t": "2024-06-01 04:00", "v": "3.000"},
	{"t": "2024-06-01 05:00", "v": "2.500"}
]}`

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("station"); got != montereyStation {
			t.Errorf("station = %q, want %q", got, montereyStation)
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTidesHiLo(t *testing.T) {
	srv := serve(t, hiloBody)
	c := NewClient(srv.URL, HiLo, time.Second)
	day := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	report, err := c.Tides(context.Background(), tides.Query{StationID: montereyStation}, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := len(report.Extrema), 6; got != want {
		t.Fatalf("got %d extrema, want %d", got, want)
	}
	first := report.Extrema[0]
	wantFirst := tides.Extremum{Time: time.Date(2024, time.May, 31, 20, 0, 0, 0, time.UTC), Height: 5, Kind: tides.High}
	if diff := cmp.Diff(wantFirst, first); diff != "" {
		t.Errorf("first extremum (-want,+got): %s", diff)
	}

	// 30 minute samples covering June 1 only.
	if got, want := len(report.Heights), 48; got != want {
		t.Fatalf("got %d heights, want %d", got, want)
	}
	for _, s := range report.Heights {
		if s.Time.Day() != 1 {
			t.Errorf("sample %s outside requested day", s.Time)
		}
	}
	if got := report.Heights[4]; !got.Time.Equal(time.Date(2024, time.June, 1, 2, 0, 0, 0, time.UTC)) || math.Abs(got.Height-1) > 1e-9 {
		t.Errorf("sample at low tide = %+v, want 1 ft at 02:00", got)
	}
}

func TestTidesHourly(t *testing.T) {
	srv := serve(t, hourlyBody)
	c := NewClient(srv.URL, Hourly, time.Second)
	day := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	report, err := c.Tides(context.Background(), tides.Query{StationID: montereyStation}, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := len(report.Heights), 6; got != want {
		t.Errorf("got %d heights, want %d", got, want)
	}
	want := []tides.Extremum{
		{Time: time.Date(2024, time.June, 1, 2, 0, 0, 0, time.UTC), Height: 1, Kind: tides.Low},
		{Time: time.Date(2024, time.June, 1, 4, 0, 0, 0, time.UTC), Height: 3, Kind: tides.High},
	}
	if diff := cmp.Diff(want, report.Extrema); diff != "" {
		t.Errorf("derived extrema (-want,+got): %s", diff)
	}
}

func TestTidesNoStation(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", HiLo, time.Second)
	_, err := c.Tides(context.Background(), tides.Query{}, time.Now())
	if err != ErrNoStation {
		t.Errorf("got error %v, want %v", err, ErrNoStation)
	}
}

func TestPredictionsErrorObject(t *testing.T) {
	srv := serve(t, `{"error": {"message": "No Predictions data was found."}}`)
	c := NewClient(srv.URL, HiLo, time.Second)
	_, err := c.Predictions(context.Background(), &PredictionQuery{Station: montereyStation})
	if err == nil {
		t.Fatal("expected error")
	}
}
