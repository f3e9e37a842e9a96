// Package ndbc reads the latest wave observation from a NOAA National Data
// Buoy Center realtime feed.
package ndbc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spencer-p/fishdash/pkg/units"
	"github.com/spencer-p/fishdash/pkg/waves"
)

const DefaultURL = "https://www.ndbc.noaa.gov"

// missing marks a value the buoy did not report.
const missing = "MM"

var (
	ErrNoStation = errors.New("ndbc station id required")
	ErrNoData    = errors.New("ndbc feed has no observations")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Latest returns the sea state in the newest row of the station's standard
// meteorological feed.
func (c *Client) Latest(ctx context.Context, station string) (*waves.Sea, error) {
	if station == "" {
		return nil, ErrNoStation
	}
	url := fmt.Sprintf("%s/data/realtime2/%s.txt", c.baseURL, station)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch buoy %s: %w", station, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ndbc buoy %s returned status %d", station, resp.StatusCode)
	}

	sea, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("buoy %s: %w", station, err)
	}
	sea.Station = station
	return sea, nil
}

// Parse reads a realtime2 text feed. The first header line names the
// columns; the first data row is the most recent.
func Parse(r io.Reader) (*waves.Sea, error) {
	scanner := bufio.NewScanner(r)
	var columns map[string]int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if columns == nil {
				columns = header(line)
			}
			continue
		}
		if columns == nil {
			return nil, errors.New("ndbc feed missing header")
		}
		return row(columns, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return nil, ErrNoData
}

func header(line string) map[string]int {
	columns := make(map[string]int)
	for i, name := range strings.Fields(strings.TrimPrefix(line, "#")) {
		columns[name] = i
	}
	return columns
}

func row(columns map[string]int, fields []string) (*waves.Sea, error) {
	value := func(name string) (float64, bool, error) {
		i, ok := columns[name]
		if !ok || i >= len(fields) || fields[i] == missing {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, false, fmt.Errorf("column %s value %q: %w", name, fields[i], err)
		}
		return v, true, nil
	}

	observed, err := observedAt(columns, fields)
	if err != nil {
		return nil, err
	}
	sea := &waves.Sea{Direction: -1, Observed: observed}

	if m, ok, err := value("WVHT"); err != nil {
		return nil, err
	} else if ok {
		sea.Height = waves.Feet(units.MetersToFeet(m))
	}
	if sec, ok, err := value("DPD"); err != nil {
		return nil, err
	} else if ok {
		sea.Period = time.Duration(sec * float64(time.Second))
	}
	if deg, ok, err := value("MWD"); err != nil {
		return nil, err
	} else if ok {
		sea.Direction = deg
	}
	return sea, nil
}

// observedAt reads the UTC timestamp columns YY MM DD hh mm.
func observedAt(columns map[string]int, fields []string) (time.Time, error) {
	var parts [5]int
	for i, name := range []string{"YY", "MM", "DD", "hh", "mm"} {
		idx, ok := columns[name]
		if !ok && name == "YY" {
			idx, ok = columns["YYYY"]
		}
		if !ok || idx >= len(fields) {
			return time.Time{}, fmt.Errorf("feed missing %s column", name)
		}
		n, err := strconv.Atoi(fields[idx])
		if err != nil {
			return time.Time{}, fmt.Errorf("column %s value %q: %w", name, fields[idx], err)
		}
		parts[i] = n
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], 0, 0, time.UTC), nil
}
