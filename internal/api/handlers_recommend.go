// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/suasor/internal/models"
)

// GetRecommendations handles GET /api/v1/recommendations/{userID}
// Returns ranked Slope One predictions for a user.
//
// Query parameters:
//   - count: number of recommendations to return (default api.default_count)
//   - includeRestricted: include R and NC-17 titles when "true" (default false)
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID < 1 {
		respondError(w, http.StatusBadRequest, "INVALID_USER_ID", "User ID must be a positive integer", err)
		return
	}

	count := getIntParam(r, "count", h.config.API.DefaultCount)
	if count < 1 || count > h.config.API.MaxCount {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("count must be between 1 and %d", h.config.API.MaxCount), nil)
		return
	}

	includeRestricted := getBoolParam(r, "includeRestricted", false)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := h.engine.Recommend(ctx, userID, count, includeRestricted)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
