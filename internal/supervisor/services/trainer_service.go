// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TrainerEngine defines the training surface of the recommendation engine.
// Declared here so the wrapper does not import the engine package directly.
type TrainerEngine interface {
	// Train rebuilds the correlation model from stored ratings and
	// publishes it on success.
	Train(ctx context.Context) error
}

// TrainerServiceConfig holds configuration for the trainer service.
type TrainerServiceConfig struct {
	// TrainOnStartup triggers a training run when the service starts.
	TrainOnStartup bool

	// TrainInterval is how often to retrain the model.
	// Zero or negative disables periodic retraining.
	TrainInterval time.Duration
}

// TrainerService wraps the engine's training schedule for suture supervision.
// It owns startup and periodic retraining; ad hoc runs arrive through the
// API and are serialized by the engine's own admission control.
type TrainerService struct {
	engine TrainerEngine
	config TrainerServiceConfig
	logger zerolog.Logger
	name   string
}

// NewTrainerService creates a new trainer service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainerService(engine TrainerEngine, cfg TrainerServiceConfig, logger zerolog.Logger) *TrainerService {
	return &TrainerService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "trainer").Logger(),
		name:   "trainer-service",
	}
}

// Serve implements the suture.Service interface.
// It runs the startup training pass and then the retraining schedule.
func (s *TrainerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("trainer service starting")

	// Train on startup if configured
	if s.config.TrainOnStartup {
		s.logger.Info().Msg("training model on startup")
		if err := s.train(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup training failed (will retry on schedule)")
		}
	}

	if s.config.TrainInterval <= 0 {
		// Stay resident so the supervisor does not treat a clean
		// return as a crash.
		s.logger.Info().Msg("periodic retraining disabled")
		<-ctx.Done()
		s.logger.Info().Msg("trainer service shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	s.logger.Info().Msg("trainer service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trainer service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled training triggered")
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

// train runs one training cycle.
// Training carries no deadline of its own; a run is bounded only by the
// service context, so supervisor shutdown still cancels an in-flight cycle.
func (s *TrainerService) train(ctx context.Context) error {
	start := time.Now()
	s.logger.Info().Msg("starting model training")

	if err := s.engine.Train(ctx); err != nil {
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("model training complete")

	return nil
}

// String returns the service name for logging.
func (s *TrainerService) String() string {
	return s.name
}
