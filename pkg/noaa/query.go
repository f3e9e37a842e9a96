package noaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spencer-p/fishdash/pkg/noaa/splines"
	"github.com/spencer-p/fishdash/pkg/tides"
)

const (
	DefaultURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	TIME_FMT   = "20060102"

	application = "fishdash"
	copyright   = "NOAA/NOS/CO-OPS"

	// sampleStep spaces heights drawn from a hilo spline.
	sampleStep = 30 * time.Minute
)

var ErrNoStation = errors.New("noaa station id required")

// Client fetches predictions from the CO-OPS datagetter.
type Client struct {
	baseURL    string
	interval   Interval
	httpClient *http.Client
}

// NewClient creates a client against baseURL, or DefaultURL when empty. An
// invalid interval falls back to HiLo.
func NewClient(baseURL string, interval Interval, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if !interval.Valid() {
		interval = HiLo
	}
	return &Client{
		baseURL:    baseURL,
		interval:   interval,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Predictions runs a single datagetter query.
func (c *Client) Predictions(ctx context.Context, q *PredictionQuery) (Predictions, error) {
	if q.Station == "" {
		return nil, ErrNoStation
	}

	addr, err := q.url(c.baseURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch predictions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("noaa returned status %d", resp.StatusCode)
	}

	var res result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("noaa station %s: %s", q.Station, res.Error.Message)
	}
	return res.Predictions, nil
}

// Tides fetches the calendar day of day at the query's station. The window
// is widened by a day on each side so the tide on either side of now is
// always known.
func (c *Client) Tides(ctx context.Context, q tides.Query, day time.Time) (*tides.Report, error) {
	start := day.AddDate(0, 0, -1)
	preds, err := c.Predictions(ctx, &PredictionQuery{
		Start:    start,
		Duration: 48 * time.Hour,
		Station:  q.StationID,
		Interval: c.interval,
	})
	if err != nil {
		return nil, err
	}

	report := &tides.Report{
		Station:   q.StationID,
		Copyright: copyright,
	}
	switch c.interval {
	case Hourly:
		samples := preds.Samples()
		report.Extrema = tides.Extrema(samples)
		report.Heights = tides.Day(samples, day)
	default:
		report.Extrema = preds.Extrema()
		spline := splines.CurvesBetween(report.Extrema)
		report.Heights = tides.Day(spline.Samples(sampleStep), day)
	}
	return report, nil
}

func (q *PredictionQuery) url(base string) (*url.URL, error) {
	addr, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse noaa url: %w", err)
	}
	addr.RawQuery = q.build().Encode()
	return addr, nil
}

func (q *PredictionQuery) build() url.Values {
	interval := q.Interval
	if !interval.Valid() {
		interval = HiLo
	}
	vals := make(url.Values)
	vals.Add("begin_date", q.Start.Format(TIME_FMT))
	vals.Add("end_date", q.Start.Add(q.Duration).Format(TIME_FMT))
	vals.Add("station", q.Station)
	vals.Add("product", "predictions")
	vals.Add("datum", "MLLW")
	vals.Add("time_zone", "gmt")
	vals.Add("interval", string(interval))
	vals.Add("units", "english")
	vals.Add("application", application)
	vals.Add("format", "json")
	return vals
}
