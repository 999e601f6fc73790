package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embermetrics/fire-report-service/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/fire_history.csv", cfg.Data.FiresPath)
	assert.Equal(t, "data/nfdrs", cfg.Data.ClimateDir)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)

	assert.Equal(t, 1910, cfg.Report.MinYear)
	assert.Equal(t, 15, cfg.Report.AnnualWindow)
	assert.Equal(t, 200, cfg.Report.ClimateWindow)
	assert.Equal(t, 0.05, cfg.Report.Significance)
	assert.Equal(t, "values", cfg.Report.StationarityAxis)

	assert.Equal(t, DisplayRange{Min: 20, Max: 50}, cfg.Report.Display.BurnIndex.Smoothed)
	assert.Equal(t, DisplayRange{Min: 0, Max: 80}, cfg.Report.Display.BurnIndex.Raw)
	assert.Equal(t, DisplayRange{Min: 8, Max: 18}, cfg.Report.Display.DeadFuelMoisture.Smoothed)
	assert.Equal(t, DisplayRange{Min: 0, Max: 30}, cfg.Report.Display.DeadFuelMoisture.Raw)

	assert.Equal(t, 38.4354, cfg.Report.Map.Lat)
	assert.Equal(t, -122.65, cfg.Report.Map.Lon)
	assert.Equal(t, 10, cfg.Report.Map.Zoom)

	assert.Equal(t, 64, cfg.Cache.MaxEntries)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	content := `
data:
  fires_path: "/data/fires.csv"
  climate_dir: "/data/nfdrs"
  destroyed_path: "/data/burnt.csv"
  recovered_path: "/data/recovered.csv"

http:
  addr: ":9090"
  shutdown_timeout: 30s

report:
  min_year: 1920
  annual_window: 10
  climate_window: 120
  stationarity_axis: keys

logging:
  level: debug
  format: text
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/data/fires.csv", cfg.Data.FiresPath)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 1920, cfg.Report.MinYear)
	assert.Equal(t, 10, cfg.Report.AnnualWindow)
	assert.Equal(t, "keys", cfg.Report.StationarityAxis)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	// Defaults survive a partial file.
	assert.Equal(t, 0.05, cfg.Report.Significance)
	assert.Equal(t, DisplayRange{Min: 20, Max: 50}, cfg.Report.Display.BurnIndex.Smoothed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing fires path", func(c *Config) { c.Data.FiresPath = "" }},
		{"missing climate dir", func(c *Config) { c.Data.ClimateDir = "" }},
		{"missing homes paths", func(c *Config) { c.Data.DestroyedPath = "" }},
		{"missing http addr", func(c *Config) { c.HTTP.Addr = "" }},
		{"non-positive shutdown timeout", func(c *Config) { c.HTTP.ShutdownTimeout = 0 }},
		{"zero annual window", func(c *Config) { c.Report.AnnualWindow = 0 }},
		{"zero climate window", func(c *Config) { c.Report.ClimateWindow = 0 }},
		{"significance too high", func(c *Config) { c.Report.Significance = 1 }},
		{"significance too low", func(c *Config) { c.Report.Significance = 0 }},
		{"bad stationarity axis", func(c *Config) { c.Report.StationarityAxis = "dates" }},
		{"inverted display range", func(c *Config) { c.Report.Display.BurnIndex.Raw = DisplayRange{Min: 80, Max: 0} }},
		{"zero cache entries", func(c *Config) { c.Cache.MaxEntries = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDisplayConfig_For(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	d := cfg.Report.Display
	assert.Equal(t, DisplayRange{Min: 0, Max: 80}, d.For(domain.BurnIndex, true))
	assert.Equal(t, DisplayRange{Min: 20, Max: 50}, d.For(domain.BurnIndex, false))
	assert.Equal(t, DisplayRange{Min: 0, Max: 30}, d.For(domain.DeadFuelMoisture, true))
	assert.Equal(t, DisplayRange{Min: 8, Max: 18}, d.For(domain.DeadFuelMoisture, false))
}
