package owm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spencer-p/fishdash/pkg/geo"
	"github.com/spencer-p/fishdash/pkg/weather"
)

// Current fetches the weather right now.
func (c *Client) Current(ctx context.Context, at geo.Coordinates) (weather.Observation, error) {
	var resp reading
	if err := c.get(ctx, "/data/2.5/weather", coordParams(at), &resp); err != nil {
		return weather.Observation{}, err
	}
	return resp.observation(), nil
}

// Forecast fetches up to limit 3-hourly forecast entries.
func (c *Client) Forecast(ctx context.Context, at geo.Coordinates, limit int) ([]weather.Observation, error) {
	if limit <= 0 || limit > MaxForecast {
		limit = MaxForecast
	}
	params := coordParams(at)
	params.Set("cnt", strconv.Itoa(limit))

	var resp forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", params, &resp); err != nil {
		return nil, err
	}
	result := make([]weather.Observation, 0, len(resp.List))
	for _, item := range resp.List {
		result = append(result, item.observation())
	}
	return result, nil
}

// Weather fetches the current snapshot and forecast together. It fails if
// either request fails.
func (c *Client) Weather(ctx context.Context, at geo.Coordinates, limit int) (*weather.Report, error) {
	report := &weather.Report{Step: forecastStep}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		current, err := c.Current(ctx, at)
		if err != nil {
			return fmt.Errorf("current weather: %w", err)
		}
		report.Current = current
		return nil
	})
	g.Go(func() error {
		forecast, err := c.Forecast(ctx, at, limit)
		if err != nil {
			return fmt.Errorf("forecast: %w", err)
		}
		report.Forecast = forecast
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func coordParams(at geo.Coordinates) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	params.Set("units", "imperial")
	return params
}

// OpenWeatherMap response types.

type conditionItem struct {
	Main string `json:"main"`
}

type mainBlock struct {
	Temp     float64 `json:"temp"`
	Pressure float64 `json:"pressure"`
	Humidity int     `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type reading struct {
	Dt         int64           `json:"dt"`
	Main       mainBlock       `json:"main"`
	Weather    []conditionItem `json:"weather"`
	Wind       windBlock       `json:"wind"`
	Visibility *float64        `json:"visibility"`
}

func (r reading) observation() weather.Observation {
	obs := weather.Observation{
		Time:             time.Unix(r.Dt, 0),
		TempF:            r.Main.Temp,
		WindMPH:          r.Wind.Speed,
		WindDeg:          r.Wind.Deg,
		Humidity:         r.Main.Humidity,
		PressureHPa:      r.Main.Pressure,
		VisibilityMeters: -1,
	}
	if len(r.Weather) > 0 {
		obs.Condition = r.Weather[0].Main
	}
	if r.Visibility != nil {
		obs.VisibilityMeters = *r.Visibility
	}
	return obs
}

type forecastResponse struct {
	List []reading `json:"list"`
}
