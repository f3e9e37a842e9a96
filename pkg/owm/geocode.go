package owm

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/spencer-p/fishdash/pkg/geo"
	"github.com/spencer-p/fishdash/pkg/locate"
)

// Check that Client can back a locate.Resolver.
var _ locate.Geocoder = (*Client)(nil)

// Direct geocodes a free text query into at most limit candidates. An empty
// query returns no candidates without a request.
func (c *Client) Direct(ctx context.Context, query string, limit int) ([]locate.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []locate.Location{}, nil
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var resp []geocodeResult
	if err := c.get(ctx, "/geo/1.0/direct", params, &resp); err != nil {
		return nil, err
	}

	result := make([]locate.Location, 0, len(resp))
	for _, r := range resp {
		result = append(result, locate.Location{
			Name:        r.Name,
			State:       r.State,
			Country:     r.Country,
			Coordinates: geo.Coordinates{Lat: r.Lat, Lon: r.Lon},
		}.WithLabel())
	}
	return result, nil
}

type geocodeResult struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
