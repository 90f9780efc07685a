// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package slopeone

// FilterRestricted walks an already-ranked prediction list in order,
// skipping movies whose classification is in the forbidden set, and stops
// once limit entries have been accepted. classify maps a movie id to its
// age classification; movies it cannot classify are skipped, since an
// unclassifiable movie cannot be proven safe to show.
//
// The output is always a prefix-consistent subsequence of the input:
// relative order is preserved, and entries past the point where the quota
// is met are never examined. Rank decides which movies are considered at
// all.
func FilterRestricted(ranked []Prediction, forbidden map[string]struct{}, classify func(movieID int64) (string, bool), limit int) []Prediction {
	if limit <= 0 {
		return nil
	}

	accepted := make([]Prediction, 0, limit)
	for _, p := range ranked {
		classification, ok := classify(p.MovieID)
		if !ok {
			continue
		}
		if _, restricted := forbidden[classification]; restricted {
			continue
		}
		accepted = append(accepted, p)
		if len(accepted) == limit {
			break
		}
	}
	return accepted
}
