// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package database

import (
	"context"
	"fmt"
	"time"
)

// InsertRating records a user's rating for a movie. Rating the same movie
// again replaces the previous value, so each (user, movie) pair keeps only
// the latest rating.
//
// The statement is prepared once and cached; this is the hottest write path
// in the application.
func (db *DB) InsertRating(ctx context.Context, userID, movieID int64, rating float64, ratedAt time.Time) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `INSERT INTO ratings (user_id, movie_id, rating, rated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET rating = excluded.rating, rated_at = excluded.rated_at`

	stmt, err := db.preparedStmt(ctx, query)
	if err != nil {
		return err
	}

	if _, err := stmt.ExecContext(ctx, userID, movieID, rating, ratedAt); err != nil {
		return fmt.Errorf("failed to insert rating (user=%d movie=%d): %w", userID, movieID, err)
	}

	return nil
}

// AllRatings loads the complete ratings table as user -> movie -> rating.
//
// This is the training input: the trainer derives the movie universe from
// the distinct movie IDs found here and walks every user's ratings when
// accumulating pair differences. One full scan at training time is cheaper
// than per-pair queries (the matrix touches every pair of rated movies).
//
// Returns an empty map when no ratings exist; the caller decides whether
// that is an error (training refuses an empty table, prediction does not).
//
// Unlike the request-scoped reads, this runs under the caller's context
// alone: a training scan has no deadline, only cancellation.
func (db *DB) AllRatings(ctx context.Context) (map[int64]map[int64]float64, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT user_id, movie_id, rating FROM ratings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer closeWithLog(rows, "ratings rows")

	ratings := make(map[int64]map[int64]float64)
	for rows.Next() {
		var userID, movieID int64
		var rating float64
		if err := rows.Scan(&userID, &movieID, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		userRatings, ok := ratings[userID]
		if !ok {
			userRatings = make(map[int64]float64)
			ratings[userID] = userRatings
		}
		userRatings[movieID] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return ratings, nil
}

// UserRatings returns one user's ratings as movie -> rating.
// An unknown user yields an empty map, not an error.
func (db *DB) UserRatings(ctx context.Context, userID int64) (map[int64]float64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id, rating FROM ratings WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings for user %d: %w", userID, err)
	}
	defer closeWithLog(rows, "user ratings rows")

	ratings := make(map[int64]float64)
	for rows.Next() {
		var movieID int64
		var rating float64
		if err := rows.Scan(&movieID, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings[movieID] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ratings: %w", err)
	}

	return ratings, nil
}
