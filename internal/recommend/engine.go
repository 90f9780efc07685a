// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/suasor/internal/config"
	"github.com/tomtom215/suasor/internal/metrics"
	"github.com/tomtom215/suasor/internal/models"
	"github.com/tomtom215/suasor/internal/slopeone"
)

// Engine owns the correlation matrix lifecycle and serves predictions
// from it. It is safe for concurrent use: serving reads an immutable
// matrix snapshot, training builds a replacement off to the side and
// swaps it in atomically once complete.
type Engine struct {
	shardCount int
	forbidden  map[string]struct{}
	logger     zerolog.Logger

	data  DataProvider
	store ModelStore

	// mu guards the published matrix and its training timestamp. The
	// matrix itself is immutable; only the pointer swap is protected.
	mu        sync.RWMutex
	matrix    *slopeone.Matrix
	trainedAt time.Time

	training atomic.Bool
}

// New creates an Engine wired to its data source and model store. All
// collaborators are required up front; there is no partially constructed
// state to complete later.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(engineCfg *config.EngineConfig, filterCfg *config.FilterConfig, data DataProvider, store ModelStore, logger zerolog.Logger) *Engine {
	shardCount := engineCfg.Shards
	if shardCount < 1 {
		logger.Warn().
			Int("configured", engineCfg.Shards).
			Msg("Shard count below 1, correcting to a single shard")
		shardCount = 1
	}

	forbidden := make(map[string]struct{}, len(filterCfg.RestrictedClassifications))
	for _, c := range filterCfg.RestrictedClassifications {
		forbidden[c] = struct{}{}
	}

	return &Engine{
		shardCount: shardCount,
		forbidden:  forbidden,
		logger:     logger.With().Str("component", "recommend").Logger(),
		data:       data,
		store:      store,
	}
}

// Train builds a fresh correlation matrix from all stored ratings,
// persists it, and publishes it for serving. Only one run may be active
// at a time; a second caller gets ErrTrainingInProgress immediately
// rather than queueing.
//
// The stage is all-or-nothing. Every shard must train and the store must
// accept the full matrix before the swap; any failure leaves the
// previously published matrix (if any) serving untouched.
func (e *Engine) Train(ctx context.Context) (err error) {
	if !e.training.CompareAndSwap(false, true) {
		return ErrTrainingInProgress
	}
	defer e.training.Store(false)

	start := time.Now()
	movieCount := 0
	defer func() {
		metrics.RecordTrainingRun(time.Since(start), movieCount, err)
	}()

	e.logger.Info().Int("shards", e.shardCount).Msg("Starting model training")

	all, err := e.data.AllRatings(ctx)
	if err != nil {
		metrics.RecordTrainingError("load_ratings")
		return dataAccessErr("load ratings", err)
	}

	table := slopeone.NewRatingTable(submissionsFromRatings(all))
	if table.MovieCount() == 0 {
		metrics.RecordTrainingError("no_data")
		return ErrNoTrainingData
	}

	index := slopeone.NewIndexMap(table.MovieIDs())
	matrix := slopeone.NewMatrix(index)
	shards := slopeone.Partition(index.IDs(), e.shardCount)

	e.logger.Info().
		Int("movies", table.MovieCount()).
		Int("users", table.UserCount()).
		Msg("Training data loaded")

	if err := e.trainShards(ctx, shards, table, matrix); err != nil {
		metrics.RecordTrainingError("train_shard")
		return fmt.Errorf("training failed: %w", err)
	}

	persistStart := time.Now()
	if err := e.store.Replace(ctx, matrix, shards); err != nil {
		metrics.RecordTrainingError("persist")
		return fmt.Errorf("persist model: %w", err)
	}
	rows := int64(matrix.Size()) * int64(matrix.Size())
	metrics.RecordModelPersist(e.store.Mode(), rows, time.Since(persistStart))

	e.mu.Lock()
	e.matrix = matrix
	e.trainedAt = time.Now()
	e.mu.Unlock()

	movieCount = matrix.Size()
	e.logger.Info().
		Int("movies", movieCount).
		Str("storage", e.store.Mode()).
		Dur("duration", time.Since(start)).
		Msg("Model training complete")
	return nil
}

// trainShards fans the shards out to one worker each and blocks until
// every worker finishes. The first failure cancels the group context,
// which the per-row check in TrainShard observes, so doomed work stops
// early and one stage-level error is reported.
func (e *Engine) trainShards(ctx context.Context, shards []slopeone.Shard, table *slopeone.RatingTable, matrix *slopeone.Matrix) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, shard := range shards {
		g.Go(func() error {
			shardStart := time.Now()
			if err := slopeone.TrainShard(gctx, shard, table, matrix); err != nil {
				return fmt.Errorf("shard %d of %d: %w", shard.Index, len(shards), err)
			}
			metrics.RecordShardTrained(time.Since(shardStart))
			e.logger.Debug().
				Int("shard", shard.Index).
				Int("movies", len(shard.MovieIDs)).
				Dur("duration", time.Since(shardStart)).
				Msg("Shard trained")
			return nil
		})
	}
	return g.Wait()
}

// Load rebuilds the in-memory matrix from the persisted model and
// publishes it for serving. The persisted layout is verified against the
// configured shard count first: a mismatch means rows would be silently
// missing, so it fails the load outright.
func (e *Engine) Load(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordModelLoad(e.store.Mode(), time.Since(start), err)
	}()

	if err := e.store.VerifyShardLayout(ctx, e.shardCount); err != nil {
		return fmt.Errorf("verify persisted model: %w", err)
	}

	ids, err := e.store.MovieIDs(ctx)
	if err != nil {
		return fmt.Errorf("read persisted movie ids: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("persisted model is empty")
	}

	// The same ascending-id rule as training, over the same universe the
	// rows were stored with, reproduces the exact index mapping.
	index := slopeone.NewIndexMap(ids)
	matrix := slopeone.NewMatrix(index)

	g, gctx := errgroup.WithContext(ctx)
	for _, shard := range slopeone.Partition(index.IDs(), e.shardCount) {
		g.Go(func() error {
			return e.store.LoadShard(gctx, shard, e.shardCount, matrix)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	e.mu.Lock()
	e.matrix = matrix
	e.mu.Unlock()

	e.logger.Info().
		Int("movies", matrix.Size()).
		Str("storage", e.store.Mode()).
		Dur("duration", time.Since(start)).
		Msg("Model loaded")
	return nil
}

// Status reports the engine's current state. It never blocks on an
// active training run.
func (e *Engine) Status() models.ModelStatus {
	e.mu.RLock()
	matrix := e.matrix
	trainedAt := e.trainedAt
	e.mu.RUnlock()

	status := models.ModelStatus{
		Loaded:      matrix != nil,
		Training:    e.training.Load(),
		ShardCount:  e.shardCount,
		StorageMode: e.store.Mode(),
	}
	if matrix != nil {
		status.MovieCount = matrix.Size()
	}
	if !trainedAt.IsZero() {
		status.LastTrainedAt = &trainedAt
	}
	return status
}

// currentMatrix returns the published matrix, or nil before the first
// successful Train or Load.
func (e *Engine) currentMatrix() *slopeone.Matrix {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matrix
}

// submissionsFromRatings adapts the provider's nested rating map to the
// submission slice the trainer consumes.
func submissionsFromRatings(all map[int64]map[int64]float64) []slopeone.UserSubmission {
	submissions := make([]slopeone.UserSubmission, 0, len(all))
	for userID, ratings := range all {
		submissions = append(submissions, slopeone.UserSubmission{
			UserID:  userID,
			Ratings: ratings,
		})
	}
	return submissions
}
