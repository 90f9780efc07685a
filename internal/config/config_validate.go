// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateEngine(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDatabase validates DuckDB configuration
func (c *Config) validateDatabase() error {
	if err := c.validateDatabasePath(); err != nil {
		return err
	}
	return c.validateDatabaseThreads()
}

// validateDatabasePath validates the database file path
func (c *Config) validateDatabasePath() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	return nil
}

// validateDatabaseThreads validates the DuckDB thread count
func (c *Config) validateDatabaseThreads() error {
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative (0 = use all CPUs)")
	}
	return nil
}

// Engine limit constants
const (
	maxEngineShards  = 256         // Upper bound on training workers / shard files
	minTrainInterval = time.Minute // Minimum periodic retrain interval (0 disables)
)

// validStorageModes defines the allowed model persistence backends
var validStorageModes = map[string]bool{
	StorageModeCSV:      true,
	StorageModeDatabase: true,
}

// validateEngine validates recommendation engine configuration
func (c *Config) validateEngine() error {
	if err := c.validateEngineShards(); err != nil {
		return err
	}
	if err := c.validateStorageMode(); err != nil {
		return err
	}
	if err := c.validateModelPathPrefix(); err != nil {
		return err
	}
	return c.validateTrainInterval()
}

// validateEngineShards enforces the shard count upper bound.
// Values below 1 are corrected to a single shard at training time
// with a warning, so only the upper bound is checked here.
func (c *Config) validateEngineShards() error {
	if c.Engine.Shards > maxEngineShards {
		return fmt.Errorf("ENGINE_SHARDS must be at most %d", maxEngineShards)
	}
	return nil
}

// validateStorageMode checks if the model storage mode is valid
func (c *Config) validateStorageMode() error {
	if !validStorageModes[c.Engine.StorageMode] {
		return fmt.Errorf("ENGINE_STORAGE_MODE must be one of: csv, database")
	}
	return nil
}

// validateModelPathPrefix validates the CSV shard file prefix
func (c *Config) validateModelPathPrefix() error {
	if c.Engine.StorageMode == StorageModeCSV && c.Engine.ModelPathPrefix == "" {
		return fmt.Errorf("ENGINE_MODEL_PATH_PREFIX is required when ENGINE_STORAGE_MODE=csv")
	}
	return nil
}

// validateTrainInterval validates the periodic retrain interval
func (c *Config) validateTrainInterval() error {
	if c.Engine.TrainInterval != 0 && c.Engine.TrainInterval < minTrainInterval {
		return fmt.Errorf("ENGINE_TRAIN_INTERVAL must be 0 (disabled) or at least %v", minTrainInterval)
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1s")
	}
	return nil
}

// API count constants
const (
	minAPICount = 1    // Minimum recommendations per request
	maxAPICount = 1000 // Upper bound for API_MAX_COUNT itself
)

// validateAPI validates recommendation count limits
func (c *Config) validateAPI() error {
	if err := c.validateAPIMaxCount(); err != nil {
		return err
	}
	return c.validateAPIDefaultCount()
}

// validateAPIMaxCount validates the maximum recommendation count
func (c *Config) validateAPIMaxCount() error {
	if c.API.MaxCount < minAPICount || c.API.MaxCount > maxAPICount {
		return fmt.Errorf("API_MAX_COUNT must be between %d and %d", minAPICount, maxAPICount)
	}
	return nil
}

// validateAPIDefaultCount validates the default recommendation count
func (c *Config) validateAPIDefaultCount() error {
	if c.API.DefaultCount < minAPICount || c.API.DefaultCount > c.API.MaxCount {
		return fmt.Errorf("API_DEFAULT_COUNT must be between %d and API_MAX_COUNT (%d)", minAPICount, c.API.MaxCount)
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS() && c.IsProduction()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
// Ensures rate limit values are within sensible ranges to prevent
// misconfiguration that could lead to DoS or ineffective protection.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if err := c.validateRateLimitRequests(); err != nil {
		return err
	}
	return c.validateRateLimitWindow()
}

// validateRateLimitRequests validates the rate limit requests value
func (c *Config) validateRateLimitRequests() error {
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	return nil
}

// validateRateLimitWindow validates the rate limit window value
func (c *Config) validateRateLimitWindow() error {
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
