// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/suasor/internal/config"
	"github.com/tomtom215/suasor/internal/middleware"
	"github.com/tomtom215/suasor/internal/models"
	"github.com/tomtom215/suasor/internal/recommend"
	"github.com/tomtom215/suasor/internal/slopeone"
)

// RecommendationEngine is the engine surface consumed by the API layer.
// *recommend.Engine satisfies it; tests substitute fakes.
type RecommendationEngine interface {
	Recommend(ctx context.Context, userID int64, count int, includeRestricted bool) (*models.RecommendationsResponse, error)
	Train(ctx context.Context) error
	Status() models.ModelStatus
}

// RatingStore is the database surface consumed by the API layer.
// *database.DB satisfies it; tests substitute fakes.
type RatingStore interface {
	Ping(ctx context.Context) error
	InsertRating(ctx context.Context, userID, movieID int64, rating float64, ratedAt time.Time) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, engine error mapping (this file)
//   - handlers_recommend.go: Recommendation endpoint
//   - handlers_ratings.go: Rating submission endpoint
//   - handlers_model.go: Model lifecycle endpoints
//   - handlers_health.go: Health/monitoring endpoints
type Handler struct {
	db        RatingStore
	engine    RecommendationEngine
	config    *config.Config
	startTime time.Time
	perfMon   *middleware.PerformanceMonitor
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - db: Database connection for rating writes and health probes
//   - engine: Recommendation engine for serving, training, and status
//   - cfg: Application configuration
//
// The handler initializes with:
//   - Performance monitor tracking last 1000 requests
//   - Start time for uptime calculations
//
// Example:
//
//	handler := api.NewHandler(db, engine, cfg)
//	router := api.NewRouter(handler, &cfg.Security)
//	http.ListenAndServe(":3861", router.SetupChi())
func NewHandler(db RatingStore, engine RecommendationEngine, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		config:    cfg,
		startTime: time.Now(),
		perfMon:   middleware.NewPerformanceMonitor(1000), // Keep last 1000 requests
	}
}

// GetPerformanceStats returns per-endpoint latency statistics gathered by the
// performance monitor middleware.
func (h *Handler) GetPerformanceStats() []middleware.EndpointStats {
	if h.perfMon != nil {
		return h.perfMon.GetStats()
	}
	return nil
}

// respondEngineError maps engine failures to stable API error codes.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, slopeone.ErrInsufficientPredictions):
		respondError(w, http.StatusBadRequest, "NOT_ENOUGH_PREDICTIONS",
			"Requested more recommendations than can be predicted for this user", err)
	case errors.Is(err, recommend.ErrModelNotLoaded):
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY",
			"No recommendation model is loaded yet", err)
	case errors.Is(err, recommend.ErrTrainingInProgress):
		respondError(w, http.StatusConflict, "TRAINING_IN_PROGRESS",
			"A training run is already in progress", nil)
	case errors.Is(err, recommend.ErrDataAccess):
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"A database error occurred", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "REQUEST_TIMEOUT",
			"The request took too long to process", err)
	default:
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR",
			"Failed to generate recommendations", err)
	}
}
