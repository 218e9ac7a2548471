package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Poller   PollerConfig   `yaml:"poller"`
	Sources  SourcesConfig  `yaml:"sources"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// PollerConfig drives the background reconciliation cycle.
type PollerConfig struct {
	Enabled             bool          `yaml:"enabled"`
	IntervalSeconds     int           `yaml:"interval_seconds"`
	Interval            time.Duration `yaml:"-"` // Derived from IntervalSeconds.
	FetchTimeoutSeconds int           `yaml:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `yaml:"-"`
}

// SourcesConfig describes the upstream feeds and how conflicts between them
// are resolved.
type SourcesConfig struct {
	Table TableSourceConfig `yaml:"table"`
	Feed  FeedSourceConfig  `yaml:"feed"`
	// Precedence lists adapter names in ascending precedence: records from a
	// later entry overwrite earlier ones for the same garage within a cycle.
	Precedence []string `yaml:"precedence"`
	// Timezone interprets upstream timestamps that carry no zone of their own.
	Timezone string `yaml:"timezone"`
}

// TableSourceConfig configures the HTML occupancy-table adapter.
type TableSourceConfig struct {
	URL string `yaml:"url"`
	// Marker identifies the occupancy table among all tables on the page.
	Marker string `yaml:"marker"`
}

// FeedSourceConfig configures the JSON vacancy-feed adapter.
type FeedSourceConfig struct {
	URL string `yaml:"url"`
	// Origin selects which garage reference entries supply the lot-id lookup.
	Origin string `yaml:"origin"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Poller.IntervalSeconds <= 0 {
		cfg.Poller.IntervalSeconds = 60
	}
	cfg.Poller.Interval = time.Duration(cfg.Poller.IntervalSeconds) * time.Second

	if cfg.Poller.FetchTimeoutSeconds <= 0 {
		cfg.Poller.FetchTimeoutSeconds = 30
	}
	cfg.Poller.FetchTimeout = time.Duration(cfg.Poller.FetchTimeoutSeconds) * time.Second

	if cfg.Sources.Table.Marker == "" {
		cfg.Sources.Table.Marker = "Garage/Ramp"
	}
	if cfg.Sources.Feed.Origin == "" {
		cfg.Sources.Feed.Origin = "UW"
	}
	if len(cfg.Sources.Precedence) == 0 {
		cfg.Sources.Precedence = []string{"table", "feed"}
	}
	if cfg.Sources.Timezone == "" {
		cfg.Sources.Timezone = "America/Chicago"
	}

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}

	// Deployed setups provide the DSN through the environment.
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required (or set DATABASE_URL)")
	}

	return &cfg, nil
}
