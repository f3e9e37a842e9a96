// Package config loads service settings from the environment and the fixed
// location table from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/spencer-p/fishdash/pkg/locate"
)

// Tide providers.
const (
	WorldTides = "worldtides"
	NOAA       = "noaa"
	NoTides    = "none"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	Prefix    string `envconfig:"PREFIX" default:"/"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	OpenWeatherURL    string `envconfig:"OPENWEATHER_URL"`
	// Geocoding enables free text search through OpenWeatherMap. Without it
	// only the fixed locations can be chosen.
	Geocoding bool `envconfig:"GEOCODING" default:"true"`

	TideProvider     string `envconfig:"TIDE_PROVIDER" default:"noaa"`
	WorldTidesAPIKey string `envconfig:"WORLDTIDES_API_KEY"`
	WorldTidesURL    string `envconfig:"WORLDTIDES_URL"`
	NOAAURL          string `envconfig:"NOAA_URL"`
	NOAAInterval     string `envconfig:"NOAA_INTERVAL" default:"hilo"`

	NDBCStation string `envconfig:"NDBC_STATION"`
	NDBCURL     string `envconfig:"NDBC_URL"`

	LocationsFile   string `envconfig:"LOCATIONS_FILE" default:"locations.yaml"`
	DefaultLocation string `envconfig:"DEFAULT_LOCATION" default:"San Francisco Bay"`
	// Timezone is an IANA name. Empty means local time.
	Timezone string `envconfig:"TIMEZONE"`

	ForecastLimit  int           `envconfig:"FORECAST_LIMIT" default:"40"`
	SearchLimit    int           `envconfig:"SEARCH_LIMIT" default:"5"`
	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"300ms"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	SessionKey    string `envconfig:"SESSION_KEY"`
	EncryptionKey string `envconfig:"ENCRYPTION_KEY"`
}

// Load reads and validates the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.TideProvider {
	case WorldTides:
		if c.WorldTidesAPIKey == "" {
			return errors.New("TIDE_PROVIDER is worldtides but WORLDTIDES_API_KEY is not set")
		}
	case NOAA, NoTides:
	default:
		return fmt.Errorf("unknown TIDE_PROVIDER %q", c.TideProvider)
	}
	if c.NOAAInterval != "hilo" && c.NOAAInterval != "h" {
		return fmt.Errorf("NOAA_INTERVAL must be hilo or h, got %q", c.NOAAInterval)
	}
	if c.ForecastLimit < 1 || c.ForecastLimit > 40 {
		return fmt.Errorf("FORECAST_LIMIT must be between 1 and 40, got %d", c.ForecastLimit)
	}
	if c.SearchLimit < 1 {
		return fmt.Errorf("SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if _, err := c.Zone(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Zone is the display time zone.
func (c *Config) Zone() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	return loc, nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return level, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}

// NewLogger builds the slog logger LOG_LEVEL and LOG_FORMAT describe.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type locationsFile struct {
	Locations []locate.Location `yaml:"locations"`
}

// LoadLocations reads the fixed location table. A missing file is an empty
// table.
func LoadLocations(path string) ([]locate.Location, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	return ParseLocations(data)
}

func ParseLocations(data []byte) ([]locate.Location, error) {
	var file locationsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse locations: %w", err)
	}
	for i, l := range file.Locations {
		if l.Name == "" {
			return nil, fmt.Errorf("location %d has no name", i)
		}
		if !l.Valid() {
			return nil, fmt.Errorf("location %q has invalid coordinates %s", l.Name, l.Coordinates)
		}
		file.Locations[i] = l.WithLabel()
	}
	return file.Locations, nil
}
