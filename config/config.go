package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig              `yaml:"server"`
	Upstream   UpstreamConfig            `yaml:"upstream"`
	Auth       AuthConfig                `yaml:"auth"`
	Database   DatabaseConfig            `yaml:"database"`
	Facilities map[string]FacilityConfig `yaml:"facilities"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// UpstreamConfig describes the PMS the scraper talks to and the pacing the
// crawler must keep between requests. The delays are deliberate rate-limiting
// against the upstream, not performance tuning.
type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	PageSafetyLimit int `yaml:"page_safety_limit"`

	PageDelayMs       int `yaml:"page_delay_ms"`
	SearchTypeDelayMs int `yaml:"search_type_delay_ms"`
	RoomTypeDelayMs   int `yaml:"room_type_delay_ms"`

	// Pacing for the facility-agnostic fetch, which hits more rows per query.
	AllPageDelayMs       int `yaml:"all_page_delay_ms"`
	AllSearchTypeDelayMs int `yaml:"all_search_type_delay_ms"`

	// Credentials and room type used by the facility-agnostic fetch.
	DefaultEmail    string `yaml:"default_email"`
	DefaultPassword string `yaml:"default_password"`
	DefaultRoomType int    `yaml:"default_room_type"`
}

// FacilityConfig is one physical property with its own PMS credentials.
type FacilityConfig struct {
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	RoomTypes []int  `yaml:"room_types"`
}

// AuthConfig holds the operator-token settings.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTLHours int           `yaml:"token_ttl_hours"`
	TokenTTL      time.Duration `yaml:"-"`
}

// DatabaseConfig holds the operator-account database settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads the configuration from the given path and applies defaults.
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

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream.base_url is required")
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
	}
	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 30
	}
	if cfg.Upstream.PageSafetyLimit <= 0 {
		cfg.Upstream.PageSafetyLimit = 20
	}
	if cfg.Upstream.PageDelayMs <= 0 {
		cfg.Upstream.PageDelayMs = 200
	}
	if cfg.Upstream.SearchTypeDelayMs <= 0 {
		cfg.Upstream.SearchTypeDelayMs = 300
	}
	if cfg.Upstream.RoomTypeDelayMs <= 0 {
		cfg.Upstream.RoomTypeDelayMs = 500
	}
	if cfg.Upstream.AllPageDelayMs <= 0 {
		cfg.Upstream.AllPageDelayMs = 500
	}
	if cfg.Upstream.AllSearchTypeDelayMs <= 0 {
		cfg.Upstream.AllSearchTypeDelayMs = 1000
	}

	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "./otareport.db"
	}

	return &cfg, nil
}
