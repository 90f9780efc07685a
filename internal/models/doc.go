// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package models defines data structures for the Suasor application.

This package contains all data models used throughout the application, including
catalog and rating structures, recommendation results, and API request/response
wrappers. It serves as the single source of truth for data structure definitions.

Key Components:

  - Movie: Catalog entry with display metadata and content classification
  - RatingRequest: Validated rating submission payload
  - Recommendation: Catalog movie paired with its predicted rating
  - ModelStatus: Correlation matrix and training pipeline state
  - APIResponse: Standardized API response wrapper

Model Categories:

1. Catalog Models:
  - Movie: Title, release date, classification, cast, and poster metadata

2. Rating Models:
  - RatingRequest: Client rating submission with validation tags
  - RatingResponse: Stored rating echoed back with timestamp

3. Recommendation Models:
  - Recommendation: Movie plus predicted rating
  - RecommendationsResponse: Ranked recommendation list for a user

4. Model Pipeline Models:
  - ModelStatus: Loaded/training flags, matrix dimension, storage mode
  - TrainingAccepted: Asynchronous training acknowledgment

5. API Models:
  - APIResponse: Standard response wrapper
  - APIError: Error details with machine-readable codes
  - Metadata: Response metadata (timestamp, query time)

Usage Example - API Response:

	import "github.com/tomtom215/suasor/internal/models"

	// Success response
	response := models.APIResponse{
	    Status: "success",
	    Data: models.RecommendationsResponse{
	        UserID:          42,
	        Count:           len(recs),
	        Recommendations: recs,
	    },
	    Metadata: models.Metadata{
	        Timestamp:   time.Now(),
	        QueryTimeMS: 12,
	    },
	}

	json.NewEncoder(w).Encode(response)

	// Error response
	errorResponse := models.APIResponse{
	    Status: "error",
	    Error: &models.APIError{
	        Code:    "NOT_ENOUGH_PREDICTIONS",
	        Message: "Requested 10 recommendations but only 3 could be predicted",
	        Details: map[string]interface{}{
	            "requested": 10,
	            "available": 3,
	        },
	    },
	}

Usage Example - Rating Submission:

	var req models.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
	    // malformed JSON
	}
	if err := validation.ValidateStruct(&req); err != nil {
	    // validation failure with per-field details
	}

Thread Safety:

All models are:
  - Immutable after creation (pass-by-value or pointers)
  - Safe for concurrent read access
  - No internal mutexes needed (data structures only)

JSON Marshaling:

All models support JSON serialization:
  - Struct tags use snake_case field naming
  - Omitempty tags for optional fields
  - time.Time uses RFC3339 format

See Also:

  - internal/database: Database operations using these models
  - internal/api: API handlers returning these models
  - internal/validation: Request validation for tagged models
*/
package models
