// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

// Package database provides data access for the Suasor application.
//
// # Overview
//
// This package serves as the data layer between the application and DuckDB,
// holding the three tables the recommender runs on: user ratings, the movie
// catalog, and the persisted correlation matrix.
//
// # Architecture
//
// The package is organized into domain-specific files:
//
//   - database.go: Core database lifecycle (connection, initialization, cleanup)
//     and the prepared statement cache
//   - database_schema.go: Table creation and index management
//   - database_utils.go: Profiling, context management, checkpoint, record counts
//   - ratings.go: Rating upserts and the training/prediction read paths
//   - catalog.go: Movie catalog upserts and batched metadata lookups
//   - seed.go: Demo data seeding (SEED_MOCK_DATA=true)
//   - errors.go: Resource cleanup helpers
//
// # Database Technology
//
// The package uses DuckDB (not SQLite) as its storage engine:
//   - OLAP-optimized, so the full-table scan at training time is fast
//   - Single-file storage fits the appliance deployment model
//   - CGO-based driver (github.com/duckdb/duckdb-go/v2)
//
// No DuckDB extensions are loaded; auto-install and auto-load are disabled
// in the connection string to avoid network access at startup.
//
// # Usage Examples
//
// Basic lifecycle:
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	// Record a rating (re-rating replaces the old value)
//	if err := db.InsertRating(ctx, userID, movieID, 4.5, time.Now().UTC()); err != nil {
//	    log.Printf("Insert failed: %v", err)
//	}
//
// Training input:
//
//	// user -> movie -> rating, one full scan
//	ratings, err := db.AllRatings(ctx)
//
// Catalog join for recommendations:
//
//	movies, err := db.MoviesByID(ctx, candidateIDs)
//	for id, movie := range movies {
//	    // movie.Classification drives the restricted-content filter
//	}
//
// # Concurrency
//
// All exported methods are safe for concurrent use. The package handles:
//   - Connection pooling via the DuckDB driver (NumCPU open connections,
//     so parallel shard loads do not serialize)
//   - Context-based cancellation; request-scoped operations get a 30s
//     default timeout when the caller's context has no deadline, while
//     AllRatings runs under the caller's context alone so long training
//     scans are never cut off
//   - Thread-safe prepared statement caching with double-checked locking
//
// # Error Handling
//
//   - Errors are wrapped with context using fmt.Errorf with %w
//   - Row iteration always checks rows.Err() after the scan loop
//   - Close() checkpoints the WAL best-effort before closing
//
// # Package Dependencies
//
// Internal dependencies:
//   - internal/models: Data model definitions
//   - internal/config: DatabaseConfig
//   - internal/logging: Structured logging
//
// External dependencies:
//   - github.com/duckdb/duckdb-go/v2: DuckDB driver (CGO-based)
//
// # Maintainer Notes
//
// When modifying queries:
//  1. Use parameterized queries (? placeholders) to prevent SQL injection
//  2. Add indexes for frequently filtered columns
//  3. Test with race detector: go test -race ./internal/database
//  4. Verify query performance with EXPLAIN ANALYZE
//
// The correlations table is written exclusively by the recommend package's
// DuckDB model store (via Conn()); keep its schema in database_schema.go in
// sync with that store's queries.
package database
