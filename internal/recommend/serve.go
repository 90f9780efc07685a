// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/suasor/internal/metrics"
	"github.com/tomtom215/suasor/internal/models"
	"github.com/tomtom215/suasor/internal/slopeone"
)

// Recommend produces the top count recommendations for a user, ranked by
// predicted rating with catalog metadata attached.
//
// With includeRestricted, the caller gets the raw top of the ranking and
// asking for more predictions than exist is ErrInsufficientPredictions.
// Without it, restricted classifications are filtered out while walking
// the ranking in order, and the result simply holds as many eligible
// movies as were found, up to count.
//
// A user with no stored ratings gets an empty list: Slope One cannot
// anchor a prediction without at least one known rating.
func (e *Engine) Recommend(ctx context.Context, userID int64, count int, includeRestricted bool) (*models.RecommendationsResponse, error) {
	matrix := e.currentMatrix()
	if matrix == nil {
		return nil, ErrModelNotLoaded
	}

	ratings, err := e.data.UserRatings(ctx, userID)
	if err != nil {
		return nil, dataAccessErr("load user ratings", err)
	}

	response := &models.RecommendationsResponse{
		UserID:            userID,
		IncludeRestricted: includeRestricted,
		Recommendations:   []models.Recommendation{},
	}
	if len(ratings) == 0 {
		e.logger.Debug().Int64("user_id", userID).Msg("User has no ratings, returning empty result")
		return response, nil
	}

	user := slopeone.UserSubmission{UserID: userID, Ratings: ratings}
	candidates := unratedCandidates(matrix, ratings)

	predictStart := time.Now()
	ranked := slopeone.PredictAll(user, candidates, matrix)
	metrics.RecordPrediction(time.Since(predictStart), len(candidates))

	var selected []slopeone.Prediction
	var catalog map[int64]models.Movie
	if includeRestricted {
		selected, catalog, err = e.selectTop(ctx, ranked, count)
	} else {
		selected, catalog, err = e.selectUnrestricted(ctx, ranked, count)
	}
	if err != nil {
		return nil, err
	}

	response.Recommendations = e.attachMetadata(selected, catalog)
	response.Count = len(response.Recommendations)
	metrics.RecordRecommendationsServed(response.Count)
	return response, nil
}

// selectTop truncates the ranking to count and fetches catalog rows for
// just those movies. Over-asking is surfaced, not silently shortened.
func (e *Engine) selectTop(ctx context.Context, ranked []slopeone.Prediction, count int) ([]slopeone.Prediction, map[int64]models.Movie, error) {
	top, err := slopeone.TopX(ranked, count)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, len(top))
	for i, p := range top {
		ids[i] = p.MovieID
	}
	catalog, err := e.data.MoviesByID(ctx, ids)
	if err != nil {
		return nil, nil, dataAccessErr("load catalog metadata", err)
	}
	return top, catalog, nil
}

// selectUnrestricted filters restricted classifications out of the
// ranking while preserving its order, stopping once count movies have
// been accepted. The catalog is fetched for the full ranking up front
// because any entry may need its classification examined.
func (e *Engine) selectUnrestricted(ctx context.Context, ranked []slopeone.Prediction, count int) ([]slopeone.Prediction, map[int64]models.Movie, error) {
	ids := make([]int64, len(ranked))
	for i, p := range ranked {
		ids[i] = p.MovieID
	}
	catalog, err := e.data.MoviesByID(ctx, ids)
	if err != nil {
		return nil, nil, dataAccessErr("load catalog metadata", err)
	}

	examined := 0
	classify := func(movieID int64) (string, bool) {
		examined++
		movie, ok := catalog[movieID]
		if !ok {
			return "", false
		}
		return movie.Classification, true
	}

	selected := slopeone.FilterRestricted(ranked, e.forbidden, classify, count)
	if skipped := examined - len(selected); skipped > 0 {
		// Counts both restricted classifications and catalog-less movies.
		metrics.RecordRecommendationFiltered("display_filter", skipped)
	}
	return selected, catalog, nil
}

// attachMetadata joins predictions with their catalog rows. A predicted
// movie missing from the catalog is skipped with a warning; ratings can
// reference movies the catalog no longer carries, and a recommendation
// with no display metadata is useless to the caller.
func (e *Engine) attachMetadata(predictions []slopeone.Prediction, catalog map[int64]models.Movie) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, len(predictions))
	for _, p := range predictions {
		movie, ok := catalog[p.MovieID]
		if !ok {
			e.logger.Warn().
				Int64("movie_id", p.MovieID).
				Msg("Predicted movie has no catalog row, dropping from results")
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Movie:           movie,
			PredictedRating: p.Rating,
		})
	}
	return recommendations
}

// unratedCandidates returns the matrix universe minus the user's rated
// movies, in universe order.
func unratedCandidates(matrix *slopeone.Matrix, ratings map[int64]float64) []int64 {
	universe := matrix.MovieIDs()
	candidates := make([]int64, 0, len(universe))
	for _, id := range universe {
		if _, rated := ratings[id]; !rated {
			candidates = append(candidates, id)
		}
	}
	return candidates
}
