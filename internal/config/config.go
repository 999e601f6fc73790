package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/embermetrics/fire-report-service/internal/domain"
)

// Config holds all service settings, read from an optional YAML file with
// FIRE_REPORT_* environment overrides.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Report  ReportConfig  `mapstructure:"report"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig locates the three source dataset families.
type DataConfig struct {
	FiresPath     string `mapstructure:"fires_path"`
	ClimateDir    string `mapstructure:"climate_dir"`
	DestroyedPath string `mapstructure:"destroyed_path"`
	RecoveredPath string `mapstructure:"recovered_path"`
}

// HTTPConfig holds the listen address and shutdown behavior.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ReportConfig holds derivation parameters and their defaults.
type ReportConfig struct {
	MinYear          int           `mapstructure:"min_year"`
	AnnualWindow     int           `mapstructure:"annual_window"`
	ClimateWindow    int           `mapstructure:"climate_window"`
	Significance     float64       `mapstructure:"significance"`
	StationarityAxis string        `mapstructure:"stationarity_axis"`
	Display          DisplayConfig `mapstructure:"display"`
	Map              MapViewConfig `mapstructure:"map"`
}

// DisplayRange is a chart y-axis clipping range.
type DisplayRange struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// VariableDisplay pairs the wide range used when raw points are shown with
// the narrow range used for the smoothed line alone.
type VariableDisplay struct {
	Raw      DisplayRange `mapstructure:"raw"`
	Smoothed DisplayRange `mapstructure:"smoothed"`
}

// DisplayConfig holds the per-variable display ranges for the climate chart.
type DisplayConfig struct {
	BurnIndex        VariableDisplay `mapstructure:"bi"`
	DeadFuelMoisture VariableDisplay `mapstructure:"fm100"`
}

// For returns the display range for a variable and show-raw mode.
func (d DisplayConfig) For(v domain.ClimateVariable, showRaw bool) DisplayRange {
	vd := d.BurnIndex
	if v == domain.DeadFuelMoisture {
		vd = d.DeadFuelMoisture
	}
	if showRaw {
		return vd.Raw
	}
	return vd.Smoothed
}

// MapViewConfig is the recovery map's initial viewport.
type MapViewConfig struct {
	Lat  float64 `mapstructure:"lat"`
	Lon  float64 `mapstructure:"lon"`
	Zoom int     `mapstructure:"zoom"`
}

// CacheConfig sizes the derived-result cache.
type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file (optional; pass "" for
// defaults plus environment only) and FIRE_REPORT_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FIRE_REPORT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.fires_path", "data/fire_history.csv")
	v.SetDefault("data.climate_dir", "data/nfdrs")
	v.SetDefault("data.destroyed_path", "data/burnt_homes.csv")
	v.SetDefault("data.recovered_path", "data/recovered_homes.csv")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")

	// Annual series cutoff and the report's default slider positions.
	v.SetDefault("report.min_year", 1910)
	v.SetDefault("report.annual_window", 15)
	v.SetDefault("report.climate_window", 200)
	v.SetDefault("report.significance", 0.05)
	v.SetDefault("report.stationarity_axis", "values")

	v.SetDefault("report.display.bi.raw.min", 0.0)
	v.SetDefault("report.display.bi.raw.max", 80.0)
	v.SetDefault("report.display.bi.smoothed.min", 20.0)
	v.SetDefault("report.display.bi.smoothed.max", 50.0)
	v.SetDefault("report.display.fm100.raw.min", 0.0)
	v.SetDefault("report.display.fm100.raw.max", 30.0)
	v.SetDefault("report.display.fm100.smoothed.min", 8.0)
	v.SetDefault("report.display.fm100.smoothed.max", 18.0)

	// Santa Rosa.
	v.SetDefault("report.map.lat", 38.4354)
	v.SetDefault("report.map.lon", -122.65)
	v.SetDefault("report.map.zoom", 10)

	v.SetDefault("cache.max_entries", 64)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.Data.FiresPath == "" {
		return fmt.Errorf("data.fires_path is required")
	}
	if c.Data.ClimateDir == "" {
		return fmt.Errorf("data.climate_dir is required")
	}
	if c.Data.DestroyedPath == "" || c.Data.RecoveredPath == "" {
		return fmt.Errorf("data.destroyed_path and data.recovered_path are required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("http.shutdown_timeout must be positive")
	}
	if c.Report.AnnualWindow < 1 {
		return fmt.Errorf("report.annual_window must be at least 1")
	}
	if c.Report.ClimateWindow < 1 {
		return fmt.Errorf("report.climate_window must be at least 1")
	}
	if c.Report.Significance <= 0 || c.Report.Significance >= 1 {
		return fmt.Errorf("report.significance must be in (0, 1)")
	}
	if _, err := domain.ParseTestAxis(c.Report.StationarityAxis); err != nil {
		return fmt.Errorf("report.stationarity_axis: %w", err)
	}
	for _, vd := range []VariableDisplay{c.Report.Display.BurnIndex, c.Report.Display.DeadFuelMoisture} {
		if vd.Raw.Min >= vd.Raw.Max || vd.Smoothed.Min >= vd.Smoothed.Max {
			return fmt.Errorf("report.display ranges must have min < max")
		}
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be at least 1")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}
