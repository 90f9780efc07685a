// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package slopeone

import (
	"errors"
	"sort"
)

// ErrInsufficientPredictions reports a TopX request for more predictions
// than were computed. Truncating silently would hide caller misuse, so
// the boundary is surfaced as a failure instead.
var ErrInsufficientPredictions = errors.New("requested more predictions than are available")

// Prediction is a candidate movie with its predicted rating for one user.
type Prediction struct {
	MovieID int64
	Rating  float64
}

// PredictAll predicts the user's rating for every candidate movie:
//
//	predicted(c) = avg over rated movies m of (rating(m) + correlation(c, m))
//
// The result is sorted descending by predicted rating, with ties broken
// by ascending movie id for a deterministic order. A user with no known
// ratings yields nil: no prediction can be derived for anyone from
// nothing, and that is an empty result rather than an error.
func PredictAll(user UserSubmission, candidates []int64, matrix *Matrix) []Prediction {
	if len(user.Ratings) == 0 {
		return nil
	}

	predictions := make([]Prediction, 0, len(candidates))
	for _, candidate := range candidates {
		var sum float64
		for ratedID, rating := range user.Ratings {
			sum += rating + matrix.Correlation(candidate, ratedID)
		}
		predictions = append(predictions, Prediction{
			MovieID: candidate,
			Rating:  sum / float64(len(user.Ratings)),
		})
	}

	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].Rating != predictions[j].Rating {
			return predictions[i].Rating > predictions[j].Rating
		}
		return predictions[i].MovieID < predictions[j].MovieID
	})
	return predictions
}

// TopX returns the first n entries of a ranked prediction list. Asking
// for more than exist, or for a negative count, returns
// ErrInsufficientPredictions; callers must request at most the available
// count or handle the failure.
func TopX(ranked []Prediction, n int) ([]Prediction, error) {
	if n < 0 || n > len(ranked) {
		return nil, ErrInsufficientPredictions
	}
	return ranked[:n], nil
}
