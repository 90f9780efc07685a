// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package slopeone

import (
	"sort"
)

// UserSubmission is one user's complete set of movie ratings. It is
// immutable for the duration of a training or prediction run.
type UserSubmission struct {
	UserID  int64
	Ratings map[int64]float64
}

// RatingTable aggregates submissions into the per-user rating maps that
// training iterates, plus the distinct movie universe they span.
type RatingTable struct {
	users    map[int64]map[int64]float64
	movieIDs []int64
}

// NewRatingTable builds a RatingTable from submissions. Multiple
// submissions for the same user merge per movie, with later submissions
// overriding earlier ones, so the table always reflects each user's most
// recent rating of each movie.
func NewRatingTable(submissions []UserSubmission) *RatingTable {
	users := make(map[int64]map[int64]float64, len(submissions))
	seen := make(map[int64]struct{})

	for _, sub := range submissions {
		ratings, ok := users[sub.UserID]
		if !ok {
			ratings = make(map[int64]float64, len(sub.Ratings))
			users[sub.UserID] = ratings
		}
		for movieID, rating := range sub.Ratings {
			ratings[movieID] = rating
			seen[movieID] = struct{}{}
		}
	}

	movieIDs := make([]int64, 0, len(seen))
	for movieID := range seen {
		movieIDs = append(movieIDs, movieID)
	}
	sort.Slice(movieIDs, func(i, j int) bool { return movieIDs[i] < movieIDs[j] })

	return &RatingTable{users: users, movieIDs: movieIDs}
}

// MovieIDs returns the distinct movie ids appearing in any rating, sorted
// ascending. The returned slice is shared; callers must not modify it.
func (t *RatingTable) MovieIDs() []int64 {
	return t.movieIDs
}

// UserCount returns the number of distinct users in the table.
func (t *RatingTable) UserCount() int {
	return len(t.users)
}

// MovieCount returns the number of distinct movies in the table.
func (t *RatingTable) MovieCount() int {
	return len(t.movieIDs)
}
