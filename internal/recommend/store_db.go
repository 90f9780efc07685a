// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package recommend

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/suasor/internal/database"
	"github.com/tomtom215/suasor/internal/logging"
	"github.com/tomtom215/suasor/internal/slopeone"
)

// DBStore persists the matrix in the correlations table. Unlike the CSV
// layout there is no per-shard artifact on disk; shards only partition
// the write and read work.
type DBStore struct {
	db *database.DB
}

// NewDBStore creates a store backed by the given database.
func NewDBStore(db *database.DB) *DBStore {
	return &DBStore{db: db}
}

// Mode implements ModelStore.
func (s *DBStore) Mode() string { return "database" }

// Replace swaps the persisted model in a single transaction: delete
// every existing row, then insert all N*N pairs of the new matrix.
// Readers either see the complete old model or the complete new one.
func (s *DBStore) Replace(ctx context.Context, matrix *slopeone.Matrix, shards []slopeone.Shard) (err error) {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Failed to rollback model replace transaction")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM correlations`); err != nil {
		return fmt.Errorf("failed to clear correlations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO correlations (source_movie_id, target_movie_id, correlation)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Failed to close insert statement")
		}
	}()

	universe := matrix.MovieIDs()
	for _, shard := range shards {
		for _, sourceID := range shard.MovieIDs {
			if err = ctx.Err(); err != nil {
				return fmt.Errorf("persist aborted at shard %d: %w", shard.Index, err)
			}
			row, ok := matrix.Row(sourceID)
			if !ok {
				return fmt.Errorf("shard %d movie %d is not in the matrix", shard.Index, sourceID)
			}
			for col, correlation := range row {
				if _, err = stmt.ExecContext(ctx, sourceID, universe[col], correlation); err != nil {
					return fmt.Errorf("failed to insert correlation (%d, %d): %w", sourceID, universe[col], err)
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit model replace: %w", err)
	}
	return nil
}

// MovieIDs returns the distinct source movie ids in ascending order.
// Every trained movie appears as a source in all N*N pairs, so the
// source column alone recovers the full universe.
func (s *DBStore) MovieIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT DISTINCT source_movie_id
		FROM correlations
		ORDER BY source_movie_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query model movie ids: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Failed to close movie id rows")
		}
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan movie id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movie ids: %w", err)
	}
	return ids, nil
}

// VerifyShardLayout checks the table holds a complete model: at least
// one row, and exactly one row per ordered pair of distinct sources.
// Rows carry no shard tagging, so the configured shard count does not
// constrain a database-backed load and goes unchecked here.
func (s *DBStore) VerifyShardLayout(ctx context.Context, _ int) error {
	var total, sources int64
	err := s.db.Conn().QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT source_movie_id)
		FROM correlations
	`).Scan(&total, &sources)
	if err != nil {
		return fmt.Errorf("failed to count persisted model rows: %w", err)
	}
	if total == 0 {
		return fmt.Errorf("no persisted model rows in correlations table")
	}
	if want := sources * sources; total != want {
		return fmt.Errorf("correlations table holds %d rows for %d movies, want %d", total, sources, want)
	}
	return nil
}

// LoadShard reads the rows whose source movies fall in the shard and
// writes them into the matrix. Shards hold contiguous ascending ids, so
// a BETWEEN on the shard's bounds selects exactly its rows.
func (s *DBStore) LoadShard(ctx context.Context, shard slopeone.Shard, _ int, matrix *slopeone.Matrix) error {
	if len(shard.MovieIDs) == 0 {
		return nil
	}
	first := shard.MovieIDs[0]
	last := shard.MovieIDs[len(shard.MovieIDs)-1]

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT source_movie_id, target_movie_id, correlation
		FROM correlations
		WHERE source_movie_id BETWEEN ? AND ?
	`, first, last)
	if err != nil {
		return fmt.Errorf("failed to query shard %d rows: %w", shard.Index, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Int("shard", shard.Index).Msg("Failed to close shard rows")
		}
	}()

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("load aborted at shard %d: %w", shard.Index, err)
		}
		var sourceID, targetID int64
		var correlation float64
		if err := rows.Scan(&sourceID, &targetID, &correlation); err != nil {
			return fmt.Errorf("failed to scan shard %d row: %w", shard.Index, err)
		}
		if !matrix.SetCorrelation(sourceID, targetID, correlation) {
			return fmt.Errorf("stored pair (%d, %d) is outside the loaded movie universe", sourceID, targetID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shard %d rows: %w", shard.Index, err)
	}
	return nil
}
