// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package recommend orchestrates the Slope One pipeline: training the
correlation matrix from stored ratings, persisting and reloading it, and
serving ranked, filtered recommendations.

# Architecture

	engine.go    - Engine lifecycle: Train, Load, Status
	serve.go     - Recommend: predict, rank, truncate or filter, catalog join
	provider.go  - DataProvider, the ratings/catalog read interface
	store.go     - ModelStore interface and backend selection
	store_csv.go - one-CSV-file-per-shard persistence
	store_db.go  - correlations-table persistence (replace on retrain)
	errors.go    - sentinel errors callers branch on

The Engine depends on two interfaces. DataProvider supplies ratings and
catalog metadata and is implemented by the database package. ModelStore
persists and reloads trained matrices. Neither direction imports the
api package, so transport stays a pure consumer.

# Training

Train snapshots all ratings, partitions the movie universe into shards,
and fans the shards out on an errgroup: one worker per shard, each
writing only its own matrix rows. The first shard failure cancels the
group and the run reports a single stage-level error. Only after every
shard finishes and the store has persisted the result is the new matrix
swapped in for serving; a partially trained matrix is never published
and never persisted. One run at a time: concurrent Train calls get
ErrTrainingInProgress.

# Loading

Load verifies the persisted shard layout against the configured shard
count before reading anything, rebuilds the id-to-index mapping from the
persisted movie set with the same ascending-id rule used at training
time, then loads shard rows in parallel under the same one-worker-per-
shard, fail-fast discipline as training.

# Serving

Recommend is read-only against the loaded matrix and safe for concurrent
callers. Failures split three ways: data-access errors wrap
ErrDataAccess, an absent matrix is ErrModelNotLoaded, and asking for
more recommendations than exist surfaces the slopeone package's
ErrInsufficientPredictions. A user with no ratings gets an empty list,
not an error.
*/
package recommend
