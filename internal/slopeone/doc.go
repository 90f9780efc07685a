// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package slopeone implements the Slope One collaborative-filtering algorithm:
building a movie-to-movie average rating difference matrix from user rating
submissions, predicting a user's rating for movies they have not seen, and
ranking and filtering the resulting candidates.

# Algorithm

For every ordered movie pair (i, j), training computes the average difference
between the ratings of users who rated both:

	correlation[i][j] = sum over co-raters of (rating(i) - rating(j)) / co-rater count

Pairs with no co-raters hold 0, as does the diagonal. Prediction for a
candidate movie c averages, over every movie m the user has rated:

	predicted(c) = avg( rating(m) + correlation(c, m) )

# Structure

	submission.go - UserSubmission and the aggregated RatingTable
	index.go      - IndexMap, the movie-id <-> matrix-index bijection
	partition.go  - contiguous sharding of the movie universe
	matrix.go     - the dense correlation matrix with soft-fail lookup
	train.go      - per-shard training of matrix rows
	predict.go    - prediction, ranking, and top-N truncation
	filter.go     - classification-based display filtering

# Concurrency

Training and loading are sharded by matrix row range. Shards are disjoint,
so workers write the matrix without locking; callers own the fan-out and
the completion barrier (see the recommend package). Once built, a Matrix
is immutable and safe for concurrent readers.

# Determinism

The IndexMap sorts movie ids ascending and must be derived from the same
full movie set at training time and at load time. Ranking breaks rating
ties by ascending movie id so equal inputs always produce equal output.

# Example

	table := slopeone.NewRatingTable(submissions)
	index := slopeone.NewIndexMap(table.MovieIDs())
	matrix := slopeone.NewMatrix(index)
	for _, shard := range slopeone.Partition(index.IDs(), 4) {
		if err := slopeone.TrainShard(ctx, shard, table, matrix); err != nil {
			return err
		}
	}
	ranked := slopeone.PredictAll(user, candidates, matrix)
	top, err := slopeone.TopX(ranked, 10)
*/
package slopeone
