// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Model training runs and shard workers
// - Model persistence and loading
// - Prediction latency and recommendation volume

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Training Metrics
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"status"}, // "success", "failure"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Duration of full model training runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600}, // Training can take minutes
		},
	)

	TrainingShardDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_shard_duration_seconds",
			Help:    "Duration of individual shard training in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	TrainingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_errors_total",
			Help: "Total number of training errors",
		},
		[]string{"stage"}, // "data_access", "shard", "persist"
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_last_success_timestamp",
			Help: "Unix timestamp of last successful training run",
		},
	)

	MatrixMovieCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "matrix_movie_count",
			Help: "Number of distinct movies in the published correlation matrix",
		},
	)

	// Model Store Metrics
	ModelRowsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "model_rows_persisted_total",
			Help: "Total number of correlation rows written by the model store",
		},
	)

	ModelPersistDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_persist_duration_seconds",
			Help:    "Duration of model persistence in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"mode"}, // "csv", "database"
	)

	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_loads_total",
			Help: "Total number of model load attempts",
		},
		[]string{"mode", "status"}, // status: "success", "failure"
	)

	ModelLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_load_duration_seconds",
			Help:    "Duration of model loading in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"mode"},
	)

	// Prediction Metrics
	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Duration of per-user prediction computation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	PredictionCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_candidates",
			Help:    "Number of candidate movies scored per prediction",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommended movies returned to clients",
		},
	)

	RecommendationsFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_filtered_total",
			Help: "Total number of ranked movies dropped before serving",
		},
		[]string{"reason"}, // "display_filter"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordTrainingRun records the outcome of a full training run.
// On success the matrix size gauge and last-success timestamp are updated.
func RecordTrainingRun(duration time.Duration, movieCount int, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRunsTotal.WithLabelValues("failure").Inc()
		return
	}
	TrainingRunsTotal.WithLabelValues("success").Inc()
	MatrixMovieCount.Set(float64(movieCount))
	TrainingLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordTrainingError records a training failure at a specific stage.
func RecordTrainingError(stage string) {
	TrainingErrors.WithLabelValues(stage).Inc()
}

// RecordShardTrained records the duration of a single shard worker.
func RecordShardTrained(duration time.Duration) {
	TrainingShardDuration.Observe(duration.Seconds())
}

// RecordModelPersist records a model persistence operation.
func RecordModelPersist(mode string, rows int64, duration time.Duration) {
	ModelPersistDuration.WithLabelValues(mode).Observe(duration.Seconds())
	ModelRowsPersisted.Add(float64(rows))
}

// RecordModelLoad records a model load attempt and its outcome.
func RecordModelLoad(mode string, duration time.Duration, err error) {
	ModelLoadDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err != nil {
		ModelLoadsTotal.WithLabelValues(mode, "failure").Inc()
		return
	}
	ModelLoadsTotal.WithLabelValues(mode, "success").Inc()
}

// RecordPrediction records a per-user prediction computation.
func RecordPrediction(duration time.Duration, candidates int) {
	PredictionDuration.Observe(duration.Seconds())
	PredictionCandidates.Observe(float64(candidates))
}

// RecordRecommendationsServed records recommended movies returned to a client.
func RecordRecommendationsServed(count int) {
	RecommendationsServed.Add(float64(count))
}

// RecordRecommendationFiltered records ranked movies dropped before serving.
func RecordRecommendationFiltered(reason string, count int) {
	RecommendationsFiltered.WithLabelValues(reason).Add(float64(count))
}
