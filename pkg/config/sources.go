package config

import (
	"log/slog"

	"github.com/spencer-p/fishdash/pkg/aggregate"
	"github.com/spencer-p/fishdash/pkg/locate"
	"github.com/spencer-p/fishdash/pkg/ndbc"
	"github.com/spencer-p/fishdash/pkg/noaa"
	"github.com/spencer-p/fishdash/pkg/owm"
	"github.com/spencer-p/fishdash/pkg/worldtides"
)

// NewAggregator wires the configured upstream sources into an aggregator.
// The geocoder is nil when GEOCODING is off.
func (c *Config) NewAggregator(logger *slog.Logger, m aggregate.Metrics) (*aggregate.Aggregator, locate.Geocoder, error) {
	zone, err := c.Zone()
	if err != nil {
		return nil, nil, err
	}
	weather := owm.NewClient(c.OpenWeatherAPIKey, c.OpenWeatherURL, c.HTTPTimeout, logger)
	var geocoder locate.Geocoder
	if c.Geocoding {
		geocoder = weather
	}
	agg := aggregate.New(aggregate.Config{
		Weather:     weather,
		Tides:       c.tideSource(),
		Buoy:        ndbc.NewClient(c.NDBCURL, c.HTTPTimeout),
		BuoyStation: c.NDBCStation,
		Location:    zone,
		Logger:      logger,
		Metrics:     m,
	})
	return agg, geocoder, nil
}

// tideSource returns a nil interface when tides are disabled.
func (c *Config) tideSource() aggregate.TideSource {
	switch c.TideProvider {
	case WorldTides:
		return worldtides.NewClient(c.WorldTidesAPIKey, c.WorldTidesURL, c.HTTPTimeout)
	case NOAA:
		return noaa.NewClient(c.NOAAURL, noaa.Interval(c.NOAAInterval), c.HTTPTimeout)
	default:
		return nil
	}
}
