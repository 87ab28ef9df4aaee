// Package config loads engine tunables from the environment with
// validated defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"moltbench/internal/bootstrap"
	"moltbench/internal/comparator"
	"moltbench/internal/ledger"
	"moltbench/internal/regression"
)

// Config holds the runtime tunables of the statistical engine
type Config struct {
	ScoreLedgerCapacity      int
	HealthLedgerCapacity     int
	AlertLogCapacity         int
	BootstrapIterations      int
	MaxConcurrentComparisons int
	LogLevel                 string
}

// Load reads configuration from environment variables, falling back to
// the built-in defaults, and validates the result.
func Load() (*Config, error) {
	config := &Config{
		ScoreLedgerCapacity:      getEnvIntOrDefault("SCORE_LEDGER_CAPACITY", ledger.DefaultScoreCapacity),
		HealthLedgerCapacity:     getEnvIntOrDefault("HEALTH_LEDGER_CAPACITY", ledger.DefaultHealthCapacity),
		AlertLogCapacity:         getEnvIntOrDefault("ALERT_LOG_CAPACITY", regression.AlertLogCapacity),
		BootstrapIterations:      getEnvIntOrDefault("BOOTSTRAP_ITERATIONS", bootstrap.DefaultIterations),
		MaxConcurrentComparisons: getEnvIntOrDefault("MAX_CONCURRENT_COMPARISONS", comparator.MaxConcurrentComparisons),
		LogLevel:                 getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Default returns the built-in configuration without consulting the
// environment, for tests and embedded use.
func Default() *Config {
	return &Config{
		ScoreLedgerCapacity:      ledger.DefaultScoreCapacity,
		HealthLedgerCapacity:     ledger.DefaultHealthCapacity,
		AlertLogCapacity:         regression.AlertLogCapacity,
		BootstrapIterations:      bootstrap.DefaultIterations,
		MaxConcurrentComparisons: comparator.MaxConcurrentComparisons,
		LogLevel:                 "INFO",
	}
}

func validateConfig(config *Config) error {
	if config.ScoreLedgerCapacity <= 0 {
		return fmt.Errorf("score ledger capacity must be positive, got %d", config.ScoreLedgerCapacity)
	}
	if config.HealthLedgerCapacity <= 0 {
		return fmt.Errorf("health ledger capacity must be positive, got %d", config.HealthLedgerCapacity)
	}
	if config.AlertLogCapacity <= 0 {
		return fmt.Errorf("alert log capacity must be positive, got %d", config.AlertLogCapacity)
	}
	if config.BootstrapIterations <= 0 {
		return fmt.Errorf("bootstrap iterations must be positive, got %d", config.BootstrapIterations)
	}
	if config.MaxConcurrentComparisons <= 0 {
		return fmt.Errorf("max concurrent comparisons must be positive, got %d", config.MaxConcurrentComparisons)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
