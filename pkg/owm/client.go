// Package owm queries the OpenWeatherMap current weather, forecast, and
// direct geocoding APIs.
package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultURL = "https://api.openweathermap.org"

	// MaxForecast is the longest 3-hourly forecast the API serves.
	MaxForecast  = 40
	forecastStep = 3 * time.Hour
)

var ErrNoKey = errors.New("openweathermap API key not set")

// Client talks to OpenWeatherMap with imperial units.
type Client struct {
	key        string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client against baseURL, or DefaultURL when empty.
func NewClient(key, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		key:     key,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// get decodes the JSON response for path and params into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.key == "" {
		return ErrNoKey
	}
	params.Set("appid", c.key)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("openweathermap request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("openweathermap %s returned status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
