// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package database

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/tomtom215/suasor/internal/logging"
	"github.com/tomtom215/suasor/internal/models"
)

// seedRandSource gives reproducible demo data across restarts
const seedRandSource = 3861

// SeedMockData seeds the database with a demo movie catalog and genre-biased
// ratings. Users cluster around genres, so the trained correlation matrix
// produces recognizable recommendations out of the box.
//
// Intended for demos and local development only (SEED_MOCK_DATA=true).
// Seeding is idempotent: catalog rows are upserts and rating pairs replace
// themselves, so repeated startups converge on the same data.
func (db *DB) SeedMockData(ctx context.Context) error {
	logging.Info().Msg("Seeding database with demo catalog and ratings...")

	rng := rand.New(rand.NewSource(seedRandSource))

	type seedMovie struct {
		id             int64
		title          string
		year           int
		classification string
		genre          string
		runtime        int
		director       string
	}

	movies := []seedMovie{
		{1, "Heat", 1995, "R", "crime", 170, "Michael Mann"},
		{2, "Ronin", 1998, "R", "crime", 122, "John Frankenheimer"},
		{3, "The Untouchables", 1987, "R", "crime", 119, "Brian De Palma"},
		{4, "Collateral", 2004, "R", "crime", 120, "Michael Mann"},
		{5, "The French Connection", 1971, "R", "crime", 104, "William Friedkin"},
		{6, "Toy Story", 1995, "G", "family", 81, "John Lasseter"},
		{7, "Finding Nemo", 2003, "G", "family", 100, "Andrew Stanton"},
		{8, "The Iron Giant", 1999, "PG", "family", 86, "Brad Bird"},
		{9, "Paddington 2", 2017, "PG", "family", 103, "Paul King"},
		{10, "My Neighbor Totoro", 1988, "G", "family", 86, "Hayao Miyazaki"},
		{11, "Alien", 1979, "R", "scifi", 117, "Ridley Scott"},
		{12, "Blade Runner", 1982, "R", "scifi", 117, "Ridley Scott"},
		{13, "The Thing", 1982, "R", "scifi", 109, "John Carpenter"},
		{14, "Arrival", 2016, "PG-13", "scifi", 116, "Denis Villeneuve"},
		{15, "Children of Men", 2006, "R", "scifi", 109, "Alfonso Cuarón"},
		{16, "When Harry Met Sally", 1989, "R", "romance", 96, "Rob Reiner"},
		{17, "Before Sunrise", 1995, "R", "romance", 101, "Richard Linklater"},
		{18, "Roman Holiday", 1953, "G", "romance", 118, "William Wyler"},
		{19, "The Apartment", 1960, "PG", "romance", 125, "Billy Wilder"},
		{20, "Amélie", 2001, "R", "romance", 122, "Jean-Pierre Jeunet"},
		{21, "Die Hard", 1988, "R", "action", 132, "John McTiernan"},
		{22, "Mad Max: Fury Road", 2015, "R", "action", 120, "George Miller"},
		{23, "The Raid", 2011, "R", "action", 101, "Gareth Evans"},
		{24, "Speed", 1994, "R", "action", 116, "Jan de Bont"},
	}

	// 1. Seed the movie catalog
	for _, sm := range movies {
		releaseDate := time.Date(sm.year, time.June, 1, 0, 0, 0, 0, time.UTC)
		runtime := sm.runtime
		director := sm.director

		m := &models.Movie{
			MovieID:        sm.id,
			Title:          sm.title,
			ReleaseDate:    &releaseDate,
			Classification: sm.classification,
			RuntimeMinutes: &runtime,
			Director:       &director,
		}
		if err := db.UpsertMovie(ctx, m); err != nil {
			return fmt.Errorf("failed to seed movie %q: %w", sm.title, err)
		}
	}
	logging.Info().Int("count", len(movies)).Msg("Seeded movie catalog")

	// 2. Seed genre-biased user ratings. Each user favors one or two genres,
	// rating those movies high and the rest middling, which gives Slope One
	// strong positive correlations within genres.
	userTastes := map[int64][]string{
		101: {"crime", "action"},
		102: {"crime"},
		103: {"family"},
		104: {"family", "romance"},
		105: {"scifi"},
		106: {"scifi", "crime"},
		107: {"romance"},
		108: {"action"},
		109: {"action", "scifi"},
		110: {"romance", "family"},
		111: {"crime", "scifi"},
		112: {"family"},
		113: {"action"},
		114: {"romance"},
		115: {"scifi", "family"},
	}

	favors := func(tastes []string, genre string) bool {
		for _, t := range tastes {
			if t == genre {
				return true
			}
		}
		return false
	}

	// Iterate users in a fixed order so the rng sequence, and therefore the
	// generated data, is identical on every run.
	userIDs := make([]int64, 0, len(userTastes))
	for userID := range userTastes {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	ratedAt := time.Now().UTC()
	totalRatings := 0
	for _, userID := range userIDs {
		tastes := userTastes[userID]
		for _, sm := range movies {
			// Each user rates roughly two thirds of the catalog
			if rng.Intn(3) == 0 {
				continue
			}

			base := 2.0 + rng.Float64() // 2.0-3.0 for out-of-taste movies
			if favors(tastes, sm.genre) {
				base = 4.0 + rng.Float64() // 4.0-5.0 for favored genres
			}
			rating := float64(int(base*2)) / 2 // Half-star steps
			if rating > 5 {
				rating = 5
			}

			if err := db.InsertRating(ctx, userID, sm.id, rating, ratedAt); err != nil {
				return fmt.Errorf("failed to seed rating (user=%d movie=%d): %w", userID, sm.id, err)
			}
			totalRatings++
		}
	}

	logging.Info().
		Int("movies", len(movies)).
		Int("users", len(userTastes)).
		Int("ratings", totalRatings).
		Msg("Demo data seeded successfully")

	return nil
}
