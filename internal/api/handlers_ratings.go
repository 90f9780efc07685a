// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/suasor/internal/models"
)

// SubmitRating handles POST /api/v1/ratings
// Records a single user/movie rating. Submitting a rating for a pair that
// already exists overwrites the previous value.
//
// The new rating is not reflected in recommendations until the next
// training run.
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ratedAt := time.Now()
	if err := h.db.InsertRating(ctx, req.UserID, req.MovieID, req.Rating, ratedAt); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record rating", err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data: models.RatingResponse{
			UserID:  req.UserID,
			MovieID: req.MovieID,
			Rating:  req.Rating,
			RatedAt: ratedAt,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
