// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
database_schema.go - Database Schema Management

This file manages the DuckDB database schema including table creation
and index management.

Tables:
  - ratings: One row per (user, movie) pair; re-rating a movie replaces
    the previous value via the primary key upsert
  - movies: Movie catalog with display metadata and classification
  - correlations: Persisted Slope One correlation matrix, one row per
    ordered (source, target) movie pair including the zero diagonal

Schema Strategy (Pre-Release):
All columns are defined in the initial CREATE TABLE statement. This provides:
  - Single source of truth for the complete schema
  - Faster startup (no migrations to run)
  - Cleaner codebase

Index Strategy:
The ratings primary key (user_id, movie_id) covers per-user lookups for
prediction. A secondary index on movie_id serves the distinct-movie scan
at training time. The correlations primary key (source, target) gives the
shard loader an index prefix on source_movie_id for its BETWEEN range scans.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := db.getTableCreationQueries()

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func (db *DB) getTableCreationQueries() []string {
	return []string{
		// Ratings table. The composite primary key makes re-rating an
		// upsert target rather than a duplicate row.
		`CREATE TABLE IF NOT EXISTS ratings (
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			rating DOUBLE NOT NULL,
			rated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, movie_id)
		);`,

		// Movie catalog. Optional metadata columns are nullable and map to
		// pointer fields on models.Movie.
		`CREATE TABLE IF NOT EXISTS movies (
			movie_id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			release_date DATE,
			classification TEXT,
			cast_list TEXT,
			runtime_minutes INTEGER,
			director TEXT,
			writer TEXT,
			poster_url TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		// Persisted correlation matrix. Holds all N*N ordered pairs for the
		// trained movie universe, diagonal included as 0, so the loader can
		// verify completeness with a single COUNT.
		`CREATE TABLE IF NOT EXISTS correlations (
			source_movie_id BIGINT NOT NULL,
			target_movie_id BIGINT NOT NULL,
			correlation DOUBLE NOT NULL,
			PRIMARY KEY (source_movie_id, target_movie_id)
		);`,
	}
}

// createIndexes creates secondary indexes for query performance
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_ratings_movie_id ON ratings(movie_id);`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
