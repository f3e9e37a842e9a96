package worldtides

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spencer-p/fishdash/pkg/geo"
	"github.com/spencer-p/fishdash/pkg/tides"
)

const body = `{
	"status": 200,
	"copyright": "Tidal data retrieved from www.worldtides.info",
	"station": "San Francisco",
	"heights": [
		{"dt": 1717138800, "height": 0.3},
		{"dt": 1717225200, "height": 0.5},
		{"dt": 1717227000, "height": 0.6096}
	],
	"extremes": [
		{"dt": 1717132800, "height": 0, "type": "Low"},
		{"dt": 1717236000, "height": 1.524, "type": "High"},
		{"dt": 1717258500, "height": -0.3048, "type": "Low"}
	]
}`

var query = tides.Query{Coordinates: geo.Coordinates{Lat: 37.7749, Lon: -122.4194}}

func TestTides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3", r.URL.Path)
		q := r.URL.Query()
		assert.True(t, q.Has("heights"))
		assert.True(t, q.Has("extremes"))
		assert.Equal(t, "2024-05-31", q.Get("date"))
		assert.Equal(t, "3", q.Get("days"))
		assert.Equal(t, "37.7749", q.Get("lat"))
		assert.Equal(t, "-122.4194", q.Get("lon"))
		assert.Equal(t, "secret", q.Get("key"))
		io.WriteString(w, body)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, time.Second)
	day := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	report, err := c.Tides(context.Background(), query, day)
	require.NoError(t, err)

	assert.Equal(t, "San Francisco", report.Station)
	assert.Equal(t, "Tidal data retrieved from www.worldtides.info", report.Copyright)
	// Heights outside the day are dropped, extremes are kept.
	require.Len(t, report.Heights, 2)
	assert.Equal(t, time.Unix(1717225200, 0), report.Heights[0].Time)
	assert.InDelta(t, 1.6, report.Heights[0].Height, 1e-9)
	assert.InDelta(t, 2.0, report.Heights[1].Height, 1e-9)

	require.Len(t, report.Extrema, 3)
	assert.Equal(t, time.Unix(1717132800, 0), report.Extrema[0].Time)
	assert.Equal(t, tides.High, report.Extrema[1].Kind)
	assert.InDelta(t, 5.0, report.Extrema[1].Height, 1e-9)
	assert.Equal(t, tides.Low, report.Extrema[2].Kind)
	assert.InDelta(t, -1.0, report.Extrema[2].Height, 1e-9)
}

func TestTidesBodyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": 400, "error": "Invalid key"}`)
	}))
	defer srv.Close()

	c := NewClient("bad", srv.URL, time.Second)
	_, err := c.Tides(context.Background(), query, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestTidesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, time.Second)
	_, err := c.Tides(context.Background(), query, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestTidesNoKey(t *testing.T) {
	c := NewClient("", "http://127.0.0.1:0", time.Second)
	_, err := c.Tides(context.Background(), query, time.Now())
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestTidesDefaultCopyright(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": 200, "heights": [], "extremes": []}`)
	}))
	defer srv.Close()

	report, err := NewClient("secret", srv.URL, time.Second).Tides(context.Background(), query, time.Now())
	require.NoError(t, err)
	assert.Equal(t, defaultCopyright, report.Copyright)
	assert.Empty(t, report.Heights)
}
