// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
// Provides centralized configuration management for all application components including
// the database, the recommendation engine, the HTTP server, and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Database: DuckDB configuration (path, memory, threads, mock data)
//     - Server: HTTP server configuration (port, host, timeout, environment)
//
//  2. Recommendation Engine:
//     - Engine: Shard count, storage mode, training schedule
//     - Filter: Restricted content classifications
//
//  3. API & Security:
//     - API: Recommendation count limits
//     - Security: Rate limiting and CORS
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Database.Path, cfg.Engine.Shards, etc. are now populated
//
// Example - Access configuration values:
//
//	db, err := database.New(&cfg.Database)
//	engine := recommend.New(&cfg.Engine, &cfg.Filter, db, store, logger)
//	server := http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)}
//
// Validation:
// The Load() function validates all fields and returns an error if values are
// malformed (invalid port, unknown storage mode, out-of-range limits).
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Engine   EngineConfig   `koanf:"engine"`
	Filter   FilterConfig   `koanf:"filter"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings for the ratings store, the movie
// catalog, and the persisted correlation model.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/suasor.duckdb)
//   - DUCKDB_MAX_MEMORY: Memory limit for DuckDB (default: 2GB)
//   - DUCKDB_THREADS: DuckDB thread count, 0 = runtime.NumCPU() (default: 0)
//   - SEED_MOCK_DATA: Seed a small demo catalog and ratings on startup (default: false)
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// Model persistence backends selectable via ENGINE_STORAGE_MODE.
const (
	// StorageModeCSV persists the matrix as one CSV file per shard.
	StorageModeCSV = "csv"
	// StorageModeDatabase persists the matrix in the correlations table.
	StorageModeDatabase = "database"
)

// EngineConfig holds recommendation engine settings: how the correlation
// matrix is partitioned, where the trained model is persisted, and when
// training runs.
//
// Shard semantics: the movie set is split into Shards contiguous row
// ranges, each trained by its own worker. Values below 1 are corrected
// to 1 at training time with a warning.
//
// Environment Variables:
//   - ENGINE_SHARDS: Number of matrix shards / training workers (default: 4)
//   - ENGINE_STORAGE_MODE: Model persistence backend, "csv" or "database" (default: database)
//   - ENGINE_MODEL_PATH_PREFIX: CSV shard file prefix, e.g. /data/model/correlations
//     produces /data/model/correlations-1-of-4.csv (required for csv mode)
//   - ENGINE_TRAIN_ON_STARTUP: Train immediately on startup (default: false)
//   - ENGINE_TRAIN_INTERVAL: Periodic retrain interval, 0 disables (default: 24h)
//   - ENGINE_LOAD_ON_STARTUP: Load the persisted model on startup (default: true)
type EngineConfig struct {
	Shards          int           `koanf:"shards"`
	StorageMode     string        `koanf:"storage_mode"` // "csv" or "database"
	ModelPathPrefix string        `koanf:"model_path_prefix"`
	TrainOnStartup  bool          `koanf:"train_on_startup"`
	TrainInterval   time.Duration `koanf:"train_interval"` // 0 = no periodic retraining
	LoadOnStartup   bool          `koanf:"load_on_startup"`
}

// FilterConfig holds content filtering settings applied to recommendation
// lists when the caller has not opted into restricted content.
//
// Environment Variables:
//   - RESTRICTED_CLASSIFICATIONS: Comma-separated classifications to filter
//     (default: "R,NC-17")
type FilterConfig struct {
	RestrictedClassifications []string `koanf:"restricted_classifications"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Environment mode: "development", "staging", "production" (default: "development")
}

// APIConfig holds recommendation count limits for the HTTP API
type APIConfig struct {
	DefaultCount int `koanf:"default_count"` // Recommendations returned when ?count is omitted
	MaxCount     int `koanf:"max_count"`     // Upper bound for the ?count parameter
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML config file,
// and environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
