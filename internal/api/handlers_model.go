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

	"github.com/tomtom215/suasor/internal/logging"
	"github.com/tomtom215/suasor/internal/models"
	"github.com/tomtom215/suasor/internal/recommend"
)

// TrainModel handles POST /api/v1/model/train
// Starts a background training run and returns 202 immediately. The status
// check here is a fast pre-check; the engine rejects overlapping runs, so a
// race between two triggers resolves to one run and one refusal.
func (h *Handler) TrainModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	// Check if already training
	if h.engine.Status().Training {
		respondError(w, http.StatusConflict, "TRAINING_IN_PROGRESS", "Training is already in progress", nil)
		return
	}

	// Start training in background. Training runs to completion, so the
	// context carries no deadline and outlives the request.
	go func() {
		if err := h.engine.Train(context.Background()); err != nil {
			if errors.Is(err, recommend.ErrTrainingInProgress) {
				logging.Warn().Msg("Training trigger lost the race to a concurrent run")
			} else {
				logging.Error().Err(err).Msg("Model training failed")
			}
		} else {
			logging.Info().Msg("Model training completed")
		}
	}()

	respondJSON(w, http.StatusAccepted, &models.APIResponse{
		Status: "success",
		Data: models.TrainingAccepted{
			Message:   "Training started",
			StartedAt: time.Now(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// ModelStatus handles GET /api/v1/model/status
// Reports whether a model is loaded, whether training is active, and the
// shape of the loaded correlation matrix.
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.engine.Status(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
