// Package worldtides fetches tide heights and extremes from the WorldTides v3
// API. Heights are converted from meters to feet.
package worldtides

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spencer-p/fishdash/pkg/tides"
	"github.com/spencer-p/fishdash/pkg/units"
)

const (
	DefaultURL = "https://www.worldtides.info"
	dateFmt    = "2006-01-02"

	defaultCopyright = "© WorldTides"
)

var ErrNoKey = errors.New("worldtides API key not set")

// Client queries WorldTides around one calendar day at a time.
type Client struct {
	key        string
	baseURL    string
	httpClient *http.Client
}

func NewClient(key, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		key:        key,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Tides fetches the heights for the calendar day of day at a point, and the
// extremes from the day before through the day after so the tides on either
// side of any time that day are known. WorldTides locates the nearest station
// itself.
func (c *Client) Tides(ctx context.Context, q tides.Query, day time.Time) (*tides.Report, error) {
	if c.key == "" {
		return nil, ErrNoKey
	}

	// heights and extremes are flags without values.
	params := url.Values{}
	params.Set("date", day.AddDate(0, 0, -1).Format(dateFmt))
	params.Set("days", "3")
	params.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	params.Set("key", c.key)
	reqURL := fmt.Sprintf("%s/api/v3?heights&extremes&%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tide data: %w", err)
	}
	defer resp.Body.Close()

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("worldtides returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || body.Status != http.StatusOK {
		msg := body.Error
		if msg == "" {
			msg = "failed to fetch tide data"
		}
		return nil, fmt.Errorf("worldtides status %d: %s", body.Status, msg)
	}

	report := body.report()
	report.Heights = tides.Day(report.Heights, day)
	return report, nil
}

// WorldTides response types.

type point struct {
	Dt     int64   `json:"dt"`
	Height float64 `json:"height"` // meters
	Type   string  `json:"type,omitempty"`
}

type response struct {
	Status    int     `json:"status"`
	Error     string  `json:"error"`
	Copyright string  `json:"copyright"`
	Station   string  `json:"station"`
	Heights   []point `json:"heights"`
	Extremes  []point `json:"extremes"`
}

func (r *response) report() *tides.Report {
	report := &tides.Report{
		Station:   r.Station,
		Copyright: r.Copyright,
		Heights:   make([]tides.Sample, 0, len(r.Heights)),
		Extrema:   make([]tides.Extremum, 0, len(r.Extremes)),
	}
	if report.Copyright == "" {
		report.Copyright = defaultCopyright
	}
	for _, h := range r.Heights {
		report.Heights = append(report.Heights, tides.Sample{
			Time:   time.Unix(h.Dt, 0),
			Height: feet(h.Height),
		})
	}
	for _, e := range r.Extremes {
		kind := tides.Low
		if e.Type == "High" {
			kind = tides.High
		}
		report.Extrema = append(report.Extrema, tides.Extremum{
			Time:   time.Unix(e.Dt, 0),
			Height: feet(e.Height),
			Kind:   kind,
		})
	}
	return report
}

// feet converts and rounds to a tenth, as the chart shows it.
func feet(m float64) float64 {
	return math.Round(units.MetersToFeet(m)*10) / 10
}
