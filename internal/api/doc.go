// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package api provides the HTTP REST API layer for Suasor.

This package exposes the recommendation engine, the rating store, and the
model lifecycle over JSON endpoints. It is the only interface between
clients and the backend services.

Key Components:

  - Router: HTTP route configuration and middleware stack integration
  - Handler: Request handlers for all API endpoints
  - Response formatting: Standardized JSON responses with metadata
  - Error handling: Consistent error responses with appropriate HTTP status codes
  - Rate limiting: Per-IP token bucket rate limiter to prevent abuse
  - CORS: Cross-Origin Resource Sharing for browser clients

API Categories:

The API is organized into the following categories:

1. Health Endpoints (/api/v1/health):
  - Aggregate health report (database plus model state)
  - Liveness probe (health/live)
  - Readiness probe (health/ready, requires a loaded model)

2. Recommendation Endpoint (/api/v1/recommendations/{userID}):
  - Ranked Slope One predictions for a user
  - Optional count and includeRestricted query parameters

3. Rating Endpoint (/api/v1/ratings):
  - Submit or update a single user/movie rating

4. Model Endpoints (/api/v1/model/):
  - Trigger background training (model/train)
  - Inspect the loaded model (model/status)

5. Observability Endpoint (/metrics):
  - Prometheus exposition for scrape-based monitoring

Usage Example:

	import (
	    "github.com/tomtom215/suasor/internal/api"
	    "github.com/tomtom215/suasor/internal/config"
	    "github.com/tomtom215/suasor/internal/database"
	    "github.com/tomtom215/suasor/internal/recommend"
	)

	// Create dependencies
	db, _ := database.New(&cfg.Database)
	store, _ := recommend.NewStore(&cfg.Engine, db)
	engine := recommend.New(&cfg.Engine, &cfg.Filter, db, store, logger)

	// Create handler and router
	handler := api.NewHandler(db, engine, cfg)
	router := api.NewRouter(handler, &cfg.Security)

	// Setup routes and start server
	http.ListenAndServe(":3861", router.SetupChi())

Thread Safety:

All handlers are thread-safe and designed for concurrent request handling.
Shared resources (database, engine) are protected by their respective
synchronization primitives; training admission is resolved by the engine,
the 409 returned here is only a fast pre-check.

Security:

  - Security headers (nosniff, frame denial, HSTS behind TLS)
  - Rate limiting (100 req/min per IP, stricter for writes)
  - Input validation and sanitization
  - SQL injection prevention via parameterized queries

See Also:

  - internal/recommend: Training, persistence, and serving
  - internal/database: Data access layer
  - internal/models: Request/response data structures
  - internal/middleware: HTTP middleware components
*/
package api
