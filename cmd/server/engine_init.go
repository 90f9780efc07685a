// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package main

import (
	"fmt"

	"github.com/tomtom215/suasor/internal/config"
	"github.com/tomtom215/suasor/internal/database"
	"github.com/tomtom215/suasor/internal/logging"
	"github.com/tomtom215/suasor/internal/recommend"
)

// initEngine builds the recommendation engine with the model store
// selected by ENGINE_STORAGE_MODE.
func initEngine(cfg *config.Config, db *database.DB) (*recommend.Engine, error) {
	store, err := recommend.NewStore(&cfg.Engine, db)
	if err != nil {
		return nil, fmt.Errorf("create model store: %w", err)
	}

	logging.Info().
		Str("storage_mode", store.Mode()).
		Int("shards", cfg.Engine.Shards).
		Msg("Initializing recommendation engine")

	return recommend.New(&cfg.Engine, &cfg.Filter, db, store, logging.Logger()), nil
}
