// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package slopeone

import (
	"github.com/tomtom215/suasor/internal/logging"
)

// Shard is a contiguous, disjoint slice of the movie universe assigned to
// one worker. Index is 1-based; shard i of K trains rows for exactly the
// movies in MovieIDs and no others.
type Shard struct {
	Index    int
	MovieIDs []int64
}

// Partition splits sorted movie ids into shardCount contiguous blocks of
// size floor(N/K); the final block absorbs the remainder, so every block
// has equal size except the last, which is at least as large. Shards are
// pairwise disjoint and their union is exactly the input. A shardCount
// below 1 is corrected to 1 with a warning rather than failing the run.
func Partition(movieIDs []int64, shardCount int) []Shard {
	if shardCount < 1 {
		logging.Warn().
			Int("shard_count", shardCount).
			Msg("Shard count below 1, correcting to a single shard")
		shardCount = 1
	}

	blockSize := len(movieIDs) / shardCount
	shards := make([]Shard, 0, shardCount)
	for i := 0; i < shardCount; i++ {
		start := i * blockSize
		end := start + blockSize
		if i == shardCount-1 {
			end = len(movieIDs)
		}
		shards = append(shards, Shard{
			Index:    i + 1,
			MovieIDs: movieIDs[start:end],
		})
	}
	return shards
}
