// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

// Package models defines data structures used throughout the Suasor application.
// These models represent movies, ratings, recommendations, and API responses.

package models

import (
	"time"
)

// Movie represents a catalog entry with the metadata shown alongside
// a recommendation.
//
// Key Fields:
//   - MovieID: Stable numeric identifier shared with the ratings table
//   - Title: Display title
//   - Classification: Content rating ("G", "PG", "PG-13", "R", "NC-17")
//
// Optional metadata uses pointer fields with omitempty so sparse catalog
// rows serialize compactly.
type Movie struct {
	MovieID        int64      `json:"movie_id"`
	Title          string     `json:"title"`
	ReleaseDate    *time.Time `json:"release_date,omitempty"`
	Classification string     `json:"classification"`
	CastList       *string    `json:"cast_list,omitempty"`
	RuntimeMinutes *int       `json:"runtime_minutes,omitempty"`
	Director       *string    `json:"director,omitempty"`
	Writer         *string    `json:"writer,omitempty"`
	PosterURL      *string    `json:"poster_url,omitempty"`
}

// RatingRequest represents a rating submission from a client.
//
// Ratings use a 1-5 scale in practice but any positive value is
// accepted; zero is reserved to mean "not rated".
//
// Example:
//
//	{
//	  "user_id": 42,
//	  "movie_id": 7,
//	  "rating": 4.5
//	}
type RatingRequest struct {
	UserID  int64   `json:"user_id" validate:"required,min=1"`
	MovieID int64   `json:"movie_id" validate:"required,min=1"`
	Rating  float64 `json:"rating" validate:"required,gt=0"`
}

// RatingResponse echoes a stored rating back to the client.
type RatingResponse struct {
	UserID  int64     `json:"user_id"`
	MovieID int64     `json:"movie_id"`
	Rating  float64   `json:"rating"`
	RatedAt time.Time `json:"rated_at"`
}

// Recommendation pairs a catalog movie with its predicted rating for
// the requesting user. Results are ordered by PredictedRating descending,
// ties broken by ascending MovieID.
type Recommendation struct {
	Movie
	PredictedRating float64 `json:"predicted_rating"`
}

// RecommendationsResponse wraps a ranked recommendation list.
//
// Fields:
//   - UserID: The user the predictions were computed for
//   - Count: Number of recommendations returned
//   - IncludeRestricted: Whether restricted classifications were eligible
//   - Recommendations: Ranked list, best match first
//
// Example:
//
//	{
//	  "user_id": 42,
//	  "count": 2,
//	  "include_restricted": false,
//	  "recommendations": [
//	    {"movie_id": 7, "title": "Heat", "classification": "PG-13", "predicted_rating": 4.8},
//	    {"movie_id": 3, "title": "Ronin", "classification": "PG-13", "predicted_rating": 4.2}
//	  ]
//	}
type RecommendationsResponse struct {
	UserID            int64            `json:"user_id"`
	Count             int              `json:"count"`
	IncludeRestricted bool             `json:"include_restricted"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// ModelStatus reports the state of the correlation matrix and the
// training pipeline.
//
// Fields:
//   - Loaded: Whether a matrix is in memory and serving predictions
//   - Training: Whether a training run is currently active
//   - MovieCount: Dimension of the loaded matrix (0 when not loaded)
//   - ShardCount: Number of shards the matrix is partitioned into
//   - StorageMode: Persistence backend ("csv" or "database")
//   - LastTrainedAt: Completion time of the most recent successful run
type ModelStatus struct {
	Loaded        bool       `json:"loaded"`
	Training      bool       `json:"training"`
	MovieCount    int        `json:"movie_count"`
	ShardCount    int        `json:"shard_count"`
	StorageMode   string     `json:"storage_mode"`
	LastTrainedAt *time.Time `json:"last_trained_at,omitempty"`
}

// TrainingAccepted is returned when a training run has been started
// asynchronously. Clients poll /api/v1/model/status for completion.
type TrainingAccepted struct {
	Message   string    `json:"message"`
	StartedAt time.Time `json:"started_at"`
}
