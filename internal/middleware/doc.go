// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for compression, performance
monitoring, request ID tracking, and Prometheus metrics integration. The api
package composes these into the middleware stack for HTTP request processing.

Key Components:

  - Compression: Gzip compression for responses
  - Performance Monitor: Request latency tracking with percentile calculations
  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation

Middleware Stack:

The typical middleware stack for an endpoint is:

	middleware.RequestID(              // Layer 1: Request tracking
	    middleware.Compression(        // Layer 2: Gzip
	        middleware.PrometheusMetrics( // Layer 3: Metrics
	            handler,               // Layer 4: Business logic
	        ),
	    ),
	)

with CORS and rate limiting applied above this stack by the chi router.

Usage Example - Compression:

	import "github.com/tomtom215/suasor/internal/middleware"

	// Wrap handler with gzip compression
	http.HandleFunc("/api/v1/recommendations/42",
	    middleware.Compression(handler),
	)

	// Accept-Encoding: gzip header is required

Usage Example - Performance Monitoring:

	// Create performance monitor with a 1000-request window
	perfMon := middleware.NewPerformanceMonitor(1000)

	// Wrap a handler
	router.Use(perfMon.Middleware)

	// Get aggregated per-endpoint statistics
	for _, stat := range perfMon.GetStats() {
	    fmt.Printf("%s p50=%dms p95=%dms p99=%dms\n",
	        stat.Path, stat.P50Duration, stat.P95Duration, stat.P99Duration)
	}

Usage Example - Request ID:

	// Request ID middleware
	http.HandleFunc("/api/v1/ratings",
	    middleware.RequestID(handler),
	)

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    logging.Info().Str("request_id", requestID).Msg("Processing request")
	}

Metric Labels:

The Prometheus middleware records endpoints under their chi route
pattern, so /api/v1/recommendations/42 and /api/v1/recommendations/7
both land in the /api/v1/recommendations/{userID} series. The
performance monitor uses the same labeling.

Thread Safety:

All middleware components are thread-safe:
  - Compression uses pooled per-request gzip writers
  - Performance monitor uses sync.RWMutex
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
  - internal/logging: Request and correlation ID context helpers
*/
package middleware
