// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package slopeone

import (
	"sort"
)

// IndexMap is a bijection between movie ids and zero-based matrix indices.
// Training and loading must build it from the identical full movie set:
// the mapping rule (ascending id order) is the contract that lets stored
// rows be converted back to the same matrix cells they came from. An
// IndexMap is immutable once built and safe for concurrent readers.
type IndexMap struct {
	byID    map[int64]int
	byIndex []int64
}

// NewIndexMap builds an IndexMap over the given movie ids. The input is
// copied and sorted ascending, so callers may pass an unsorted slice.
// Duplicate ids collapse to one entry.
func NewIndexMap(movieIDs []int64) *IndexMap {
	sorted := make([]int64, len(movieIDs))
	copy(sorted, movieIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	byID := make(map[int64]int, len(sorted))
	byIndex := make([]int64, 0, len(sorted))
	for _, id := range sorted {
		if _, dup := byID[id]; dup {
			continue
		}
		byID[id] = len(byIndex)
		byIndex = append(byIndex, id)
	}

	return &IndexMap{byID: byID, byIndex: byIndex}
}

// Index returns the matrix index for a movie id, or false when the id is
// not part of the mapped universe.
func (m *IndexMap) Index(movieID int64) (int, bool) {
	idx, ok := m.byID[movieID]
	return idx, ok
}

// ID returns the movie id at a matrix index, or false when the index is
// out of range.
func (m *IndexMap) ID(index int) (int64, bool) {
	if index < 0 || index >= len(m.byIndex) {
		return 0, false
	}
	return m.byIndex[index], true
}

// IDs returns all mapped movie ids in index order (ascending id). The
// returned slice is shared; callers must not modify it.
func (m *IndexMap) IDs() []int64 {
	return m.byIndex
}

// Len returns the number of mapped movies.
func (m *IndexMap) Len() int {
	return len(m.byIndex)
}
