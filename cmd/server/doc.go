// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package main is the entry point for the Suasor server application.

Suasor is a self-hosted movie recommendation service built on the Slope One
collaborative filtering algorithm. It stores user ratings in embedded DuckDB,
trains a sharded item-item correlation model, persists the model to CSV files
or database tables, and serves personalized recommendations over a REST API.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("suasor")
	├── EngineSupervisor ("engine-layer")
	│   └── Trainer (startup + scheduled model training)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST endpoints + Prometheus metrics)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB with ratings, movies, and correlations tables
 4. Model Store: CSV shard files or DuckDB-backed correlations
 5. Engine: Slope One training, loading, and serving
 6. Startup Load: optional model load before traffic (ENGINE_LOAD_ON_STARTUP)
 7. Supervisor Tree: Suture v4 process supervision
 8. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=3861               # HTTP server port
	HTTP_HOST=0.0.0.0            # Bind address
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Database
	DUCKDB_PATH=/data/suasor.duckdb  # DuckDB file path
	SEED_MOCK_DATA=false             # Seed demo ratings at startup

	# Engine
	ENGINE_SHARDS=4                  # Model partitions trained in parallel
	ENGINE_STORAGE_MODE=database     # csv or database
	ENGINE_MODEL_PATH_PREFIX=/data/model/correlations
	ENGINE_TRAIN_ON_STARTUP=false
	ENGINE_TRAIN_INTERVAL=24h        # 0 disables periodic retraining
	ENGINE_LOAD_ON_STARTUP=true      # Load persisted model before serving

	# Recommendations
	API_DEFAULT_COUNT=10         # Recommendations when ?count omitted
	API_MAX_COUNT=100            # Upper bound for ?count
	RESTRICTED_CLASSIFICATIONS=R,NC-17

See config.example.yaml for the complete configuration reference.

# Storage Modes

The trained correlation model can be persisted two ways:

	ENGINE_STORAGE_MODE=csv       # One CSV file per shard next to the prefix
	ENGINE_STORAGE_MODE=database  # correlations table inside DuckDB

Both modes replace the persisted model atomically per training run and are
read back with identical results. Loading verifies that the stored shard
layout matches ENGINE_SHARDS and refuses mismatches.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Cancels any in-flight training run
 4. Closes the database
 5. Reports any services that failed to stop

# Usage Examples

Development (seeded demo data, console logs):

	export SEED_MOCK_DATA=true
	export ENGINE_TRAIN_ON_STARTUP=true
	export LOG_FORMAT=console
	go run ./cmd/server

Production (database-backed model, daily retraining):

	export DUCKDB_PATH=/data/suasor.duckdb
	export ENGINE_STORAGE_MODE=database
	export ENGINE_TRAIN_INTERVAL=24h
	export ENGINE_LOAD_ON_STARTUP=true
	export CORS_ORIGINS=https://yourdomain.com
	./suasor

Docker:

	docker run -d \
	  -v suasor-data:/data \
	  -e DUCKDB_PATH=/data/suasor.duckdb \
	  -e ENGINE_TRAIN_ON_STARTUP=true \
	  -p 3861:3861 \
	  ghcr.io/tomtom215/suasor

# API Overview

The API provides endpoints organized into categories:

  - Health: /api/v1/health, /health/live, /health/ready
  - Recommendations: /api/v1/recommendations/{userID}
  - Ratings: POST /api/v1/ratings
  - Model: POST /api/v1/model/train, GET /api/v1/model/status
  - Metrics: /metrics (Prometheus exposition)

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/recommend: Training, loading, and serving
  - internal/slopeone: Core Slope One algorithm
*/
package main
