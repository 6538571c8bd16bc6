// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. Never use it in production.
const DevJWTSecret = "splitsaga-dev-secret"

const (
	defaultPort     = 8080
	defaultDBPath   = "./data/splitsaga.db"
	defaultTokenTTL = 24 * time.Hour
)

type Config struct {
	Port       int
	DBPath     string
	JWTSecret  string
	TokenTTL   time.Duration
	LogLevel   string
	LogFormat  string
	Currency   string
	CORSOrigin string
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UsesDevSecret reports whether tokens are signed with DevJWTSecret.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// Load reads the configuration. Malformed values fall back to their defaults;
// the returned Config is always usable and the error lists what was ignored.
func Load() (*Config, error) {
	var errs []error

	port, err := getEnvInt("PORT", defaultPort)
	errs = append(errs, err)
	ttl, err := getEnvDuration("TOKEN_TTL", defaultTokenTTL)
	errs = append(errs, err)

	cfg := &Config{
		Port:       port,
		DBPath:     getEnv("DB_PATH", defaultDBPath),
		JWTSecret:  getEnv("JWT_SECRET", DevJWTSecret),
		TokenTTL:   ttl,
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		Currency:   getEnv("CURRENCY", "USD"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
	}
	return cfg, errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil || i <= 0 || i > 65535 {
		return fallback, fmt.Errorf("invalid %s %q, using %d", key, value, fallback)
	}
	return i, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("invalid %s %q, using %s", key, value, fallback)
	}
	return d, nil
}
