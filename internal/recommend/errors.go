// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrTrainingInProgress is returned by Train when a run is already
	// active. Callers retry after the current run finishes.
	ErrTrainingInProgress = errors.New("a training run is already in progress")

	// ErrModelNotLoaded is returned by Recommend before any matrix has
	// been trained or loaded.
	ErrModelNotLoaded = errors.New("no correlation model is loaded")

	// ErrNoTrainingData is returned by Train when the ratings store is
	// empty, leaving no movie universe to build a matrix over.
	ErrNoTrainingData = errors.New("no ratings available to train on")

	// ErrDataAccess marks storage and connection failures from the
	// ratings or catalog store. It aborts the operation in progress and
	// is never retried automatically.
	ErrDataAccess = errors.New("data access failure")
)

// dataAccessErr wraps a storage failure so callers can branch on
// errors.Is(err, ErrDataAccess) while keeping the underlying cause.
func dataAccessErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDataAccess, err)
}
