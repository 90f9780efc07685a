// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements comprehensive application instrumentation using the Prometheus
client library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Database query performance
  - Training run statistics and per-shard durations
  - Model persistence and load performance
  - Prediction latency and candidate set sizes
  - Recommendation serving and filtering counts

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3861/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
    Buckets: .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limited requests (counter)
    Labels: endpoint

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_connection_pool_size: Open database connections (gauge)

Training Metrics:
  - training_runs_total: Training runs by outcome (counter)
    Labels: status (success, failure)
  - training_duration_seconds: Full training run duration (histogram)
    Buckets: 1, 5, 10, 30, 60, 120, 300, 600
  - training_shard_duration_seconds: Per-shard accumulation time (histogram)
  - training_errors_total: Training failures by stage (counter)
    Labels: stage (data_access, shard, persist)
  - training_last_success_timestamp: Unix timestamp of last successful run (gauge)
  - matrix_movie_count: Movies in the active correlation matrix (gauge)

Model Store Metrics:
  - model_rows_persisted_total: Correlation rows written (counter)
  - model_persist_duration_seconds: Persistence time (histogram)
    Labels: mode (csv, database)
  - model_loads_total: Model loads by outcome (counter)
    Labels: mode, status
  - model_load_duration_seconds: Load time (histogram)
    Labels: mode

Prediction Metrics:
  - prediction_duration_seconds: Per-user prediction time (histogram)
    Buckets: .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5
  - prediction_candidates: Candidate movies scored per request (histogram)
  - recommendations_served_total: Recommendations returned to clients (counter)
  - recommendations_filtered_total: Recommendations dropped (counter)
    Labels: reason (display_filter covers restricted classifications and
    movies missing from the catalog)

System Metrics:
  - app_info: Version and Go runtime build information (gauge)
    Labels: version, go_version
  - app_uptime_seconds: Seconds since process start (gauge)

# Usage Example

Basic recording from the engine:

	import "github.com/tomtom215/suasor/internal/metrics"

	func (e *Engine) Train(ctx context.Context) error {
	    start := time.Now()
	    err := e.train(ctx)
	    metrics.RecordTrainingRun(time.Since(start), e.movieCount(), err)
	    return err
	}

Recording database query metrics:

	func (db *DB) AllRatings(ctx context.Context) (map[int64]map[int64]float64, error) {
	    start := time.Now()
	    rows, err := db.conn.QueryContext(ctx, query)
	    metrics.RecordDBQuery("SELECT", "ratings", time.Since(start), err)
	    ...
	}

# Prometheus Configuration

Example prometheus.yml configuration:

	scrape_configs:
	  - job_name: 'suasor'
	    static_configs:
	      - targets: ['localhost:3861']
	    metrics_path: '/metrics'
	    scrape_interval: 15s

Example PromQL queries:

	# Request rate
	rate(api_requests_total[5m])

	# p95 prediction latency
	histogram_quantile(0.95, rate(prediction_duration_seconds_bucket[5m]))

	# Training failure ratio
	sum(rate(training_runs_total{status="failure"}[1h]))
	/
	sum(rate(training_runs_total[1h]))

	# Time since last successful training run
	time() - training_last_success_timestamp

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels use chi route patterns, never raw paths
  - Error types in duckdb_query_errors_total are truncated to 50 characters
  - Training error stages are limited to predefined constants
  - User and movie identifiers never appear as labels

# See Also

  - internal/middleware: HTTP middleware with metrics integration
  - internal/database: Database metrics recording
  - internal/recommend: Training and prediction metrics recording
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
  - https://prometheus.io/docs/practices/instrumentation/: Instrumentation guide
*/
package metrics
