package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "chargepulse/libs/config"
)

// Config defines analytics service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"ANALYTICS_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"ANALYTICS_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"ANALYTICS_REDIS_ADDR"`
		Password string `yaml:"password" env:"ANALYTICS_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"ANALYTICS_REDIS_DB"`
		TTL      int    `yaml:"ttlSeconds" env:"ANALYTICS_REDIS_TTL"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret string `yaml:"jwtSecret" env:"ANALYTICS_JWT_SECRET"`
	} `yaml:"auth"`
	Analytics struct {
		Timezone string `yaml:"timezone" env:"ANALYTICS_TIMEZONE"`
	} `yaml:"analytics"`
}

// Load reads configuration via the shared helper. Redis and auth are
// optional; the database is not.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8090"
	cfg.Redis.TTL = 300
	cfg.Analytics.Timezone = "UTC"

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("config: timezone: %w", err)
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8090"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// CacheTTL returns the aggregate cache TTL as duration.
func (c *Config) CacheTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// Location resolves the configured timezone for time-pattern bucketing.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Analytics.Timezone)
	if tz == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(tz)
}
