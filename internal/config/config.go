package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix scopes environment overrides, e.g. PROCURE_SERVER_PORT.
const EnvPrefix = "PROCURE"

const (
	SourceFile   = "file"
	SourceRemote = "remote"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Simulation SimulationConfig `yaml:"simulation"`
	Forecast   ForecastConfig   `yaml:"forecast"`
	Suppliers  SuppliersConfig  `yaml:"suppliers"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port                string   `yaml:"port"`
	Mode                string   `yaml:"mode"` // gin mode: debug, release, test
	AllowedOrigins      []string `yaml:"allowed_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
	// RateLimit is requests/second on the simulation endpoints; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// SimulationConfig holds server-side caps and request defaults.
type SimulationConfig struct {
	MaxTrials         int     `yaml:"max_trials"`
	DefaultTrials     int     `yaml:"default_trials"`
	DefaultVolatility float64 `yaml:"default_volatility"`
	DefaultHedgeRatio float64 `yaml:"default_hedge_ratio"`
	DefaultDemandTons float64 `yaml:"default_demand_tons"`
	// IndexBasePrice is $/ton at index 100.
	IndexBasePrice float64 `yaml:"index_base_price"`
	// MaxParallelScenarios bounds concurrent engine runs in a comparison.
	MaxParallelScenarios int `yaml:"max_parallel_scenarios"`
}

type ForecastConfig struct {
	Source          string `yaml:"source"` // file | remote
	File            string `yaml:"file"`
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// SuppliersConfig locates the manufacturer sheet. An empty file disables supplier routes.
type SuppliersConfig struct {
	File                string `yaml:"file"`
	DefaultMaxSuppliers int    `yaml:"default_max_suppliers"`
	DefaultMenuPoints   int    `yaml:"default_menu_points"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                "8080",
			Mode:                "release",
			AllowedOrigins:      []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:3001"},
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 60,
			RateLimit:           5,
			RateBurst:           10,
		},
		Simulation: SimulationConfig{
			MaxTrials:            100000,
			DefaultTrials:        10000,
			DefaultVolatility:    0.05,
			DefaultHedgeRatio:    0.70,
			DefaultDemandTons:    10000,
			IndexBasePrice:       700,
			MaxParallelScenarios: 4,
		},
		Forecast: ForecastConfig{
			Source:          SourceFile,
			File:            "data/forecast_baseline.yaml",
			TimeoutSeconds:  10,
			CacheTTLSeconds: 3600,
		},
		Suppliers: SuppliersConfig{
			File:                "data/manufacturers.csv",
			DefaultMaxSuppliers: 2,
			DefaultMenuPoints:   10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and validates.
// An empty path means defaults plus environment only.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		// Relative data files resolve against the config directory when present there.
		resolveRelative(path, &c.Forecast.File)
		resolveRelative(path, &c.Suppliers.File)
	}
	applyEnv(c)
	return c, nil
}

func resolveRelative(configPath string, file *string) {
	if *file == "" || filepath.IsAbs(*file) {
		return
	}
	cand := filepath.Join(filepath.Dir(configPath), *file)
	if _, err := os.Stat(cand); err == nil {
		*file = cand
	}
}

// applyEnv overlays PROCURE_* environment variables onto c.
func applyEnv(c *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	integer := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	float := func(key string, dst *float64) {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}

	str("server.port", &c.Server.Port)
	str("server.mode", &c.Server.Mode)
	if v.IsSet("server.allowed_origins") {
		c.Server.AllowedOrigins = strings.Split(v.GetString("server.allowed_origins"), ",")
	}
	integer("server.read_timeout_seconds", &c.Server.ReadTimeoutSeconds)
	integer("server.write_timeout_seconds", &c.Server.WriteTimeoutSeconds)
	float("server.rate_limit", &c.Server.RateLimit)
	integer("server.rate_burst", &c.Server.RateBurst)

	integer("simulation.max_trials", &c.Simulation.MaxTrials)
	integer("simulation.default_trials", &c.Simulation.DefaultTrials)
	float("simulation.default_volatility", &c.Simulation.DefaultVolatility)
	float("simulation.default_hedge_ratio", &c.Simulation.DefaultHedgeRatio)
	float("simulation.default_demand_tons", &c.Simulation.DefaultDemandTons)
	float("simulation.index_base_price", &c.Simulation.IndexBasePrice)
	integer("simulation.max_parallel_scenarios", &c.Simulation.MaxParallelScenarios)

	str("forecast.source", &c.Forecast.Source)
	str("forecast.file", &c.Forecast.File)
	str("forecast.base_url", &c.Forecast.BaseURL)
	str("forecast.api_key", &c.Forecast.APIKey)
	integer("forecast.timeout_seconds", &c.Forecast.TimeoutSeconds)
	integer("forecast.cache_ttl_seconds", &c.Forecast.CacheTTLSeconds)

	str("suppliers.file", &c.Suppliers.File)
	integer("suppliers.default_max_suppliers", &c.Suppliers.DefaultMaxSuppliers)
	integer("suppliers.default_menu_points", &c.Suppliers.DefaultMenuPoints)

	str("logging.level", &c.Logging.Level)
	str("logging.format", &c.Logging.Format)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("server.rate_limit must be >= 0")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return errors.New("server.rate_burst must be >= 1 when rate limiting is enabled")
	}

	s := c.Simulation
	if s.MaxTrials <= 0 {
		return errors.New("simulation.max_trials must be > 0")
	}
	if s.DefaultTrials <= 0 || s.DefaultTrials > s.MaxTrials {
		return fmt.Errorf("simulation.default_trials must be in (0, %d]", s.MaxTrials)
	}
	if s.DefaultVolatility < 0 {
		return errors.New("simulation.default_volatility must be >= 0")
	}
	if s.DefaultHedgeRatio < 0 || s.DefaultHedgeRatio > 1 {
		return errors.New("simulation.default_hedge_ratio must be in [0, 1]")
	}
	if s.DefaultDemandTons <= 0 {
		return errors.New("simulation.default_demand_tons must be > 0")
	}
	if s.IndexBasePrice <= 0 {
		return errors.New("simulation.index_base_price must be > 0")
	}
	if s.MaxParallelScenarios < 1 {
		return errors.New("simulation.max_parallel_scenarios must be >= 1")
	}

	switch c.Forecast.Source {
	case SourceFile:
		if c.Forecast.File == "" {
			return errors.New("forecast.file is required when forecast.source is file")
		}
	case SourceRemote:
		if c.Forecast.BaseURL == "" {
			return errors.New("forecast.base_url is required when forecast.source is remote")
		}
	default:
		return fmt.Errorf("forecast.source must be %q or %q, got %q", SourceFile, SourceRemote, c.Forecast.Source)
	}
	if c.Forecast.TimeoutSeconds <= 0 {
		return errors.New("forecast.timeout_seconds must be > 0")
	}
	if c.Forecast.CacheTTLSeconds < 0 {
		return errors.New("forecast.cache_ttl_seconds must be >= 0")
	}
	if c.Suppliers.DefaultMaxSuppliers < 1 {
		return errors.New("suppliers.default_max_suppliers must be >= 1")
	}
	if c.Suppliers.DefaultMenuPoints < 2 {
		return errors.New("suppliers.default_menu_points must be >= 2")
	}
	return nil
}
