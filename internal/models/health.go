// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package models

import "time"

// HealthStatus is the aggregate health report returned by GET /api/v1/health.
type HealthStatus struct {
	Status            string     `json:"status"`
	Version           string     `json:"version"`
	DatabaseConnected bool       `json:"database_connected"`
	ModelLoaded       bool       `json:"model_loaded"`
	StorageMode       string     `json:"storage_mode"`
	LastTrainedAt     *time.Time `json:"last_trained_at,omitempty"`
	Uptime            float64    `json:"uptime_seconds"`
}
