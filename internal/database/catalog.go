// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomtom215/suasor/internal/models"
)

// moviesByIDBatchSize caps the IN-list length per catalog query
const moviesByIDBatchSize = 512

// UpsertMovie inserts or replaces a movie catalog entry
func (db *DB) UpsertMovie(ctx context.Context, m *models.Movie) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `INSERT INTO movies
		(movie_id, title, release_date, classification, cast_list, runtime_minutes, director, writer, poster_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (movie_id) DO UPDATE SET
			title = excluded.title,
			release_date = excluded.release_date,
			classification = excluded.classification,
			cast_list = excluded.cast_list,
			runtime_minutes = excluded.runtime_minutes,
			director = excluded.director,
			writer = excluded.writer,
			poster_url = excluded.poster_url`

	classification := any(nil)
	if m.Classification != "" {
		classification = m.Classification
	}

	_, err := db.conn.ExecContext(ctx, query,
		m.MovieID, m.Title, m.ReleaseDate, classification,
		m.CastList, m.RuntimeMinutes, m.Director, m.Writer, m.PosterURL)
	if err != nil {
		return fmt.Errorf("failed to upsert movie %d: %w", m.MovieID, err)
	}

	return nil
}

// MoviesByID fetches catalog entries for the given movie IDs in batches.
//
// Returns a map keyed by movie ID. IDs with no catalog entry are simply
// absent from the map; callers decide whether a miss is a warning (the
// recommendation path skips and logs) or irrelevant.
func (db *DB) MoviesByID(ctx context.Context, ids []int64) (map[int64]models.Movie, error) {
	if len(ids) == 0 {
		return map[int64]models.Movie{}, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	movies := make(map[int64]models.Movie, len(ids))
	for start := 0; start < len(ids); start += moviesByIDBatchSize {
		end := start + moviesByIDBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := db.moviesByIDBatch(ctx, ids[start:end], movies); err != nil {
			return nil, err
		}
	}

	return movies, nil
}

// moviesByIDBatch runs one IN-list query and merges results into movies
func (db *DB) moviesByIDBatch(ctx context.Context, ids []int64, movies map[int64]models.Movie) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`SELECT movie_id, title, release_date, classification, cast_list,
		runtime_minutes, director, writer, poster_url
		FROM movies WHERE movie_id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query movies: %w", err)
	}
	defer closeWithLog(rows, "movies rows")

	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return err
		}
		movies[m.MovieID] = m
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate movies: %w", err)
	}

	return nil
}

// scanMovie converts one movies row into a models.Movie, mapping NULL
// columns to nil pointers (or the empty string for classification).
func scanMovie(rows *sql.Rows) (models.Movie, error) {
	var (
		m              models.Movie
		releaseDate    sql.NullTime
		classification sql.NullString
		castList       sql.NullString
		runtimeMinutes sql.NullInt32
		director       sql.NullString
		writer         sql.NullString
		posterURL      sql.NullString
	)

	err := rows.Scan(&m.MovieID, &m.Title, &releaseDate, &classification, &castList,
		&runtimeMinutes, &director, &writer, &posterURL)
	if err != nil {
		return models.Movie{}, fmt.Errorf("failed to scan movie row: %w", err)
	}

	if releaseDate.Valid {
		t := releaseDate.Time
		m.ReleaseDate = &t
	}
	m.Classification = classification.String
	m.CastList = nullStringPtr(castList)
	if runtimeMinutes.Valid {
		n := int(runtimeMinutes.Int32)
		m.RuntimeMinutes = &n
	}
	m.Director = nullStringPtr(director)
	m.Writer = nullStringPtr(writer)
	m.PosterURL = nullStringPtr(posterURL)

	return m, nil
}

// nullStringPtr converts a NullString to *string, nil when NULL
func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
