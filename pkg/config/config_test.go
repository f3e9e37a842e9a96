package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "owm-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/", cfg.Prefix)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "owm-key", cfg.OpenWeatherAPIKey)
	assert.True(t, cfg.Geocoding)
	assert.Equal(t, NOAA, cfg.TideProvider)
	assert.Equal(t, "hilo", cfg.NOAAInterval)
	assert.Equal(t, "locations.yaml", cfg.LocationsFile)
	assert.Equal(t, "San Francisco Bay", cfg.DefaultLocation)
	assert.Equal(t, 40, cfg.ForecastLimit)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "owm-key")
	t.Setenv("PORT", "9090")
	t.Setenv("PREFIX", "/fish")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("GEOCODING", "false")
	t.Setenv("TIDE_PROVIDER", "worldtides")
	t.Setenv("WORLDTIDES_API_KEY", "wt-key")
	t.Setenv("NDBC_STATION", "46026")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("FORECAST_LIMIT", "8")
	t.Setenv("SEARCH_DEBOUNCE", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/fish", cfg.Prefix)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.Geocoding)
	assert.Equal(t, WorldTides, cfg.TideProvider)
	assert.Equal(t, "wt-key", cfg.WorldTidesAPIKey)
	assert.Equal(t, "46026", cfg.NDBCStation)
	assert.Equal(t, 8, cfg.ForecastLimit)
	assert.Equal(t, 500*time.Millisecond, cfg.SearchDebounce)

	zone, err := cfg.Zone()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, zone)
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	os.Unsetenv("OPENWEATHER_API_KEY")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			LogLevel:      "info",
			LogFormat:     "text",
			TideProvider:  NOAA,
			NOAAInterval:  "hilo",
			ForecastLimit: 40,
			SearchLimit:   5,
			HTTPTimeout:   time.Second,
		}
	}
	table := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"worldtides without key", func(c *Config) { c.TideProvider = WorldTides }, "WORLDTIDES_API_KEY"},
		{"unknown provider", func(c *Config) { c.TideProvider = "moon" }, "TIDE_PROVIDER"},
		{"bad interval", func(c *Config) { c.NOAAInterval = "6" }, "NOAA_INTERVAL"},
		{"forecast too long", func(c *Config) { c.ForecastLimit = 41 }, "FORECAST_LIMIT"},
		{"no search results", func(c *Config) { c.SearchLimit = 0 }, "SEARCH_LIMIT"},
		{"no timeout", func(c *Config) { c.HTTPTimeout = 0 }, "HTTP_TIMEOUT"},
		{"bad zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}

	base := valid()
	require.NoError(t, base.Validate())
	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid()
			test.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.errMsg)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "station", "9414290")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"station":"9414290"`)
}

func TestLoadLocations(t *testing.T) {
	locs, err := LoadLocations(filepath.Join("..", "..", "locations.yaml"))
	require.NoError(t, err)
	require.Len(t, locs, 2)

	sf := locs[0]
	assert.Equal(t, "San Francisco Bay", sf.Name)
	assert.Equal(t, "San Francisco Bay, CA, US", sf.DisplayName)
	assert.Equal(t, 37.7749, sf.Lat)
	assert.Equal(t, -122.4194, sf.Lon)
	assert.Equal(t, "9414290", sf.StationID)
	assert.Equal(t, "46026", sf.BuoyID)
	assert.Equal(t, "9413450", locs[1].StationID)
}

func TestLoadLocationsMissingFile(t *testing.T) {
	locs, err := LoadLocations(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestParseLocationsInvalid(t *testing.T) {
	for name, in := range map[string]string{
		"no name":    "locations:\n  - lat: 1\n    lon: 2\n",
		"bad lat":    "locations:\n  - name: Nowhere\n    lat: 123\n    lon: 2\n",
		"not yaml":   "locations: [",
		"wrong type": "locations:\n  - name: X\n    lat: north\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLocations([]byte(strings.TrimSpace(in)))
			assert.Error(t, err)
		})
	}
}
