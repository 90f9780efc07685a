// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package recommend

import (
	"context"

	"github.com/tomtom215/suasor/internal/models"
)

// DataProvider supplies the ratings and catalog reads the engine needs.
// It is implemented by the database package; defining it here keeps the
// dependency pointing from transport and storage toward the engine
// rather than the other way around.
type DataProvider interface {
	// AllRatings returns every stored rating as user -> movie -> rating.
	// Training derives the movie universe and all submissions from it.
	AllRatings(ctx context.Context) (map[int64]map[int64]float64, error)

	// UserRatings returns one user's ratings. Unknown users yield an
	// empty map, not an error.
	UserRatings(ctx context.Context, userID int64) (map[int64]float64, error)

	// MoviesByID returns catalog metadata for the given ids. Ids with no
	// catalog row are absent from the result.
	MoviesByID(ctx context.Context, ids []int64) (map[int64]models.Movie, error)
}
