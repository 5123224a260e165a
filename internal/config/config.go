// Package config loads runtime configuration from the process environment.
// The environment is the contract: no .env parsing, no config files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults
const (
	defaultHTTPAddr      = ":8000"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 120 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultDBPath        = "storeseed.db"
	defaultBaseline      = 10
	defaultPollAttempts  = 10
	defaultPollInterval  = time.Second
	defaultClearPageSize = 50
)

// Config captures runtime configuration organised by concern. The generation
// provider configures itself from its own environment variables.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Seeder  SeederConfig
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig locates the audit database.
type StorageConfig struct {
	Path string
}

// SeederConfig bounds batch processing and the cancellation poll.
type SeederConfig struct {
	Baseline      int
	PollAttempts  int
	PollInterval  time.Duration
	ClearPageSize int
}

// Load reads and validates configuration, falling back to defaults for
// anything unset.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Addr:         getEnv("STORESEED_HTTP_ADDR", defaultHTTPAddr),
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		Storage: StorageConfig{
			Path: getEnv("STORESEED_DB_PATH", defaultDBPath),
		},
		Seeder: SeederConfig{
			Baseline:      defaultBaseline,
			PollAttempts:  defaultPollAttempts,
			PollInterval:  defaultPollInterval,
			ClearPageSize: defaultClearPageSize,
		},
	}

	baseline, err := getEnvInt("STORESEED_BASELINE", cfg.Seeder.Baseline)
	if err != nil {
		return Config{}, fmt.Errorf("invalid STORESEED_BASELINE: %w", err)
	}
	if baseline < 0 {
		return Config{}, fmt.Errorf("STORESEED_BASELINE must be >= 0")
	}
	cfg.Seeder.Baseline = baseline

	attempts, err := getEnvInt("STORESEED_POLL_ATTEMPTS", cfg.Seeder.PollAttempts)
	if err != nil {
		return Config{}, fmt.Errorf("invalid STORESEED_POLL_ATTEMPTS: %w", err)
	}
	if attempts <= 0 {
		return Config{}, fmt.Errorf("STORESEED_POLL_ATTEMPTS must be > 0")
	}
	cfg.Seeder.PollAttempts = attempts

	intervalMS, err := getEnvInt("STORESEED_POLL_INTERVAL_MS", int(cfg.Seeder.PollInterval.Milliseconds()))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STORESEED_POLL_INTERVAL_MS: %w", err)
	}
	if intervalMS <= 0 {
		return Config{}, fmt.Errorf("STORESEED_POLL_INTERVAL_MS must be > 0")
	}
	cfg.Seeder.PollInterval = time.Duration(intervalMS) * time.Millisecond

	pageSize, err := getEnvInt("STORESEED_CLEAR_PAGE_SIZE", cfg.Seeder.ClearPageSize)
	if err != nil {
		return Config{}, fmt.Errorf("invalid STORESEED_CLEAR_PAGE_SIZE: %w", err)
	}
	if pageSize <= 0 || pageSize > 250 {
		return Config{}, fmt.Errorf("STORESEED_CLEAR_PAGE_SIZE must be in 1..250")
	}
	cfg.Seeder.ClearPageSize = pageSize

	if cfg.Storage.Path == "" {
		return Config{}, fmt.Errorf("STORESEED_DB_PATH must not be empty")
	}

	return cfg, nil
}

// getEnv reads a string variable, returning the fallback when unset or blank.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt reads an integer variable, returning the fallback when unset.
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
