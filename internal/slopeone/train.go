// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package slopeone

import (
	"context"
	"fmt"
)

// TrainShard computes the matrix rows for one shard's movies against the
// full movie universe. Rows outside the shard are never touched, so
// concurrent TrainShard calls for disjoint shards need no locking. The
// context is checked between rows; a cancelled context aborts the shard
// so a failed run stops quickly instead of finishing doomed work.
func TrainShard(ctx context.Context, shard Shard, table *RatingTable, matrix *Matrix) error {
	for _, sourceID := range shard.MovieIDs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("training aborted at shard %d: %w", shard.Index, err)
		}

		row, ok := matrix.index.Index(sourceID)
		if !ok {
			// The shard was partitioned from a different movie set than the
			// matrix was sized for. The run is unsound and must not publish.
			return fmt.Errorf("shard %d movie %d is not in the index map", shard.Index, sourceID)
		}

		sums, freqs := accumulateRow(sourceID, table, matrix.index)
		for col, freq := range freqs {
			if freq > 0 {
				matrix.rows[row][col] = sums[col] / float64(freq)
			}
		}
	}
	return nil
}

// accumulateRow sums rating differences and co-rater counts between one
// source movie and every other movie, over all users who rated the
// source. The diagonal is skipped and stays 0.
func accumulateRow(sourceID int64, table *RatingTable, index *IndexMap) (sums []float64, freqs []int) {
	n := index.Len()
	sums = make([]float64, n)
	freqs = make([]int, n)

	for _, ratings := range table.users {
		sourceRating, rated := ratings[sourceID]
		if !rated {
			continue
		}
		for targetID, targetRating := range ratings {
			if targetID == sourceID {
				continue
			}
			col, ok := index.Index(targetID)
			if !ok {
				continue
			}
			sums[col] += sourceRating - targetRating
			freqs[col]++
		}
	}
	return sums, freqs
}
