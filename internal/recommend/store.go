// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/suasor/internal/config"
	"github.com/tomtom215/suasor/internal/database"
	"github.com/tomtom215/suasor/internal/slopeone"
)

// ModelStore persists trained correlation matrices and reloads them.
// Both backends store the same logical content: every ordered movie pair
// with its correlation, the diagonal included as 0.
type ModelStore interface {
	// Replace atomically supersedes any previously persisted model with
	// the given matrix. Prior rows or files never survive a retrain.
	Replace(ctx context.Context, matrix *slopeone.Matrix, shards []slopeone.Shard) error

	// MovieIDs returns the persisted model's movie universe, from which
	// the loader rebuilds the id-to-index mapping.
	MovieIDs(ctx context.Context) ([]int64, error)

	// VerifyShardLayout checks that the persisted model is complete and
	// matches the configured shard count before any rows are loaded.
	// Loading from a mismatched layout would silently drop rows, so a
	// mismatch is an error, not a warning.
	VerifyShardLayout(ctx context.Context, shardCount int) error

	// LoadShard populates the matrix rows belonging to one shard from
	// persistence. Shards are disjoint, so concurrent calls for
	// different shards write the matrix without locking.
	LoadShard(ctx context.Context, shard slopeone.Shard, shardCount int, matrix *slopeone.Matrix) error

	// Mode names the persistence backend for logs and status reporting.
	Mode() string
}

// NewStore selects the persistence backend from configuration.
func NewStore(cfg *config.EngineConfig, db *database.DB) (ModelStore, error) {
	switch cfg.StorageMode {
	case config.StorageModeCSV:
		return NewCSVStore(cfg.ModelPathPrefix), nil
	case config.StorageModeDatabase:
		return NewDBStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.StorageMode)
	}
}
