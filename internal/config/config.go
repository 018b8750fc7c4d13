// Package config loads dashboard settings from defaults, an optional YAML
// file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultPublicAPIURL = "http://localhost:8080"
	DefaultAPIURL       = "http://api:8080"
	DefaultListenAddr   = ":3000"
	DefaultLogLevel     = "info"
	DefaultLocale       = "en-US"
	DefaultTimeout      = 10 * time.Second
	DefaultRateLimit    = 20.0
	DefaultRateBurst    = 40
)

// ConfigPathEnv names the variable holding the optional YAML file path.
const ConfigPathEnv = "DASHBOARD_CONFIG"

// Config holds the dashboard settings.
type Config struct {
	// PublicAPIURL is the indexing API base as reachable from the user's side.
	PublicAPIURL string `yaml:"public_api_url"`
	// APIURL is the server-only internal base, used for health checks.
	APIURL string `yaml:"api_url"`

	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	Timezone   string `yaml:"timezone"`
	Locale     string `yaml:"locale"`

	Retries int           `yaml:"retries"`
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// CompatAliases adds the deprecated field names to project views.
	CompatAliases bool `yaml:"compat_aliases"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PublicAPIURL: DefaultPublicAPIURL,
		APIURL:       DefaultAPIURL,
		ListenAddr:   DefaultListenAddr,
		LogLevel:     DefaultLogLevel,
		Locale:       DefaultLocale,
		Timeout:      DefaultTimeout,
		RateLimit:    DefaultRateLimit,
		RateBurst:    DefaultRateBurst,
	}
}

// Load builds the configuration. envFile is read before the environment
// and never overrides variables already set; a missing file is ignored.
func Load(envFile string) (Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves Timezone. An empty value means the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Retries < 0 {
		return errors.New("DASHBOARD_RETRIES must be >= 0")
	}
	if c.Timeout <= 0 {
		return errors.New("DASHBOARD_TIMEOUT must be positive")
	}
	if c.RateLimit < 0 {
		return errors.New("DASHBOARD_RATE_LIMIT must be >= 0")
	}
	if c.RateBurst < 0 {
		return errors.New("DASHBOARD_RATE_BURST must be >= 0")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadEnvFile sets KEY=VALUE pairs from path without overriding existing
// variables.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read env file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, set := os.LookupEnv(key); !set {
			os.Setenv(key, value)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PUBLIC_API_URL"); v != "" {
		cfg.PublicAPIURL = v
	}
	if v := os.Getenv("API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("DASHBOARD_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DASHBOARD_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("DASHBOARD_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("DASHBOARD_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DASHBOARD_RETRIES: %w", err)
		}
		cfg.Retries = n
	}
	if v := os.Getenv("DASHBOARD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DASHBOARD_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("DASHBOARD_RATE_LIMIT"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid DASHBOARD_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = r
	}
	if v := os.Getenv("DASHBOARD_RATE_BURST"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DASHBOARD_RATE_BURST: %w", err)
		}
		cfg.RateBurst = b
	}
	if v := os.Getenv("DASHBOARD_COMPAT_ALIASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DASHBOARD_COMPAT_ALIASES: %w", err)
		}
		cfg.CompatAliases = b
	}
	return nil
}
