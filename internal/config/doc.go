// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package config provides centralized configuration management for Suasor.

This package handles loading, validation, and parsing of configuration for
all application components. It ensures consistent configuration across the
backend services and provides sensible defaults for optional settings.

# Configuration Sources

Configuration is loaded with Koanf v2 from three layered sources, later
layers overriding earlier ones:

  - Built-in defaults (all optional settings)
  - Optional YAML config file (config.yaml, or CONFIG_PATH)
  - Environment variables (highest priority)

# Configuration Structure

The package organizes configuration into logical groups:

  - DatabaseConfig: DuckDB connection and performance tuning
  - EngineConfig: Matrix sharding, model storage, training schedule
  - FilterConfig: Restricted content classifications
  - ServerConfig: HTTP server settings (host, port, timeout, environment)
  - APIConfig: Recommendation count limits
  - SecurityConfig: Rate limiting and CORS
  - LoggingConfig: Log level, format, and caller reporting

# Environment Variables

Database (DatabaseConfig):
  - DUCKDB_PATH: Database file path (default: /data/suasor.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 2GB)
  - DUCKDB_THREADS: Thread count, 0 = CPU count (default: 0)
  - SEED_MOCK_DATA: Seed demo catalog and ratings (default: false)

Recommendation Engine (EngineConfig):
  - ENGINE_SHARDS: Matrix shards / training workers (default: 4)
  - ENGINE_STORAGE_MODE: Model persistence, csv or database (default: database)
  - ENGINE_MODEL_PATH_PREFIX: CSV shard file prefix (default: /data/model/correlations)
  - ENGINE_TRAIN_ON_STARTUP: Train immediately on startup (default: false)
  - ENGINE_TRAIN_INTERVAL: Periodic retrain interval, 0 disables (default: 24h)
  - ENGINE_LOAD_ON_STARTUP: Load persisted model on startup (default: true)

Content Filtering (FilterConfig):
  - RESTRICTED_CLASSIFICATIONS: Comma-separated classifications hidden from
    recommendation lists unless the caller opts in (default: R,NC-17)

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3861)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging, or production (default: development)

API Limits (APIConfig):
  - API_DEFAULT_COUNT: Recommendations when ?count omitted (default: 10)
  - API_MAX_COUNT: Upper bound for ?count (default: 100)

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

Basic configuration loading:

	import "github.com/tomtom215/suasor/internal/config"

	// Load configuration from defaults, file, and environment
	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}

	// Access configuration values
	fmt.Printf("Starting server on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Printf("Shards: %d, storage: %s\n", cfg.Engine.Shards, cfg.Engine.StorageMode)

Testing with custom configuration:

	// Override environment variables for testing
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ENGINE_STORAGE_MODE", "csv")
	t.Setenv("ENGINE_MODEL_PATH_PREFIX", t.TempDir()+"/correlations")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

The package performs validation at load time:

  - Required fields: DUCKDB_PATH, ENGINE_MODEL_PATH_PREFIX (if csv mode)
  - Enumerations: ENGINE_STORAGE_MODE (csv, database), LOG_LEVEL, LOG_FORMAT
  - Numeric ranges: HTTP_PORT (1-65535), ENGINE_SHARDS (max 256),
    API_MAX_COUNT (1-1000), RATE_LIMIT_REQUESTS (1-100000)
  - Duration ranges: HTTP_TIMEOUT >= 1s, ENGINE_TRAIN_INTERVAL 0 or >= 1m

Shard counts below 1 are not a validation error: the engine corrects them
to a single shard at training time and logs a warning.

# YAML Config File

For persistent settings, create a config.yaml:

	engine:
	  shards: 8
	  storage_mode: csv
	  model_path_prefix: /data/model/correlations
	filter:
	  restricted_classifications:
	    - R
	    - NC-17
	logging:
	  level: debug
	  format: console

The file is searched at ./config.yaml, ./config.yml, /etc/suasor/config.yaml,
and /etc/suasor/config.yml, or at the path named by CONFIG_PATH.

# Docker Deployment

For Docker deployments, use environment variables or docker-compose.yml:

	services:
	  suasor:
	    image: ghcr.io/tomtom215/suasor:latest
	    environment:
	      DUCKDB_PATH: /data/suasor.duckdb
	      ENGINE_SHARDS: "8"
	      ENGINE_TRAIN_ON_STARTUP: "true"
	    ports:
	      - "3861:3861"
	    volumes:
	      - suasor-data:/data

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for concurrent
access from multiple goroutines without synchronization.

# Performance

Configuration loading is fast (<10ms) and only happens once at startup. Values
are parsed and validated during Load(), so runtime access is direct field reads
with zero overhead.

# See Also

  - README.md: User-facing configuration documentation
  - internal/recommend: Engine consuming EngineConfig and FilterConfig
  - internal/database: DuckDB wrapper consuming DatabaseConfig
*/
package config
